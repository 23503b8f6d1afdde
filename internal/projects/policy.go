package projects

import "devshowcase/showcase-backend/internal/auth"

// CanView decides whether viewer may see the project. Approved projects are
// public; everything else is visible only to the owner or an admin. Callers
// translate a negative answer into a not-found response, never a
// permission-denied one, so the existence of other users' submissions is not
// leaked.
func CanView(p *Project, viewer auth.Identity) bool {
	if p.Status == StatusApproved {
		return true
	}
	if viewer.Anonymous() {
		return false
	}
	return viewer.IsAdmin || p.OwnerID == viewer.UserID
}
