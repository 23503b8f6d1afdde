package projects

// Moderation lifecycle guards. Admin decisions (approve, reject) are allowed
// from any state; owner actions are constrained by the tables below.

var editableStatuses = map[Status]bool{
	StatusPending:  true,
	StatusRejected: true,
}

// CanEdit reports whether content updates and deletion are allowed in the
// given state. Approved projects are frozen until an admin rejects them.
func CanEdit(s Status) bool {
	return editableStatuses[s]
}

// CanResubmit reports whether the owner may resubmit from the given state.
func CanResubmit(s Status) bool {
	return s == StatusRejected
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
