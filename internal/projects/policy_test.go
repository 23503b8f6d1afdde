package projects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"devshowcase/showcase-backend/internal/auth"
)

func TestCanView(t *testing.T) {
	ownerID := uuid.New()
	owner := auth.Identity{UserID: ownerID}
	stranger := auth.Identity{UserID: uuid.New()}
	moderator := auth.Identity{UserID: uuid.New(), IsAdmin: true}
	anonymous := auth.Identity{}

	cases := []struct {
		name     string
		status   Status
		viewer   auth.Identity
		expected bool
	}{
		{"approved visible to anonymous", StatusApproved, anonymous, true},
		{"approved visible to stranger", StatusApproved, stranger, true},
		{"pending hidden from anonymous", StatusPending, anonymous, false},
		{"pending hidden from stranger", StatusPending, stranger, false},
		{"pending visible to owner", StatusPending, owner, true},
		{"pending visible to admin", StatusPending, moderator, true},
		{"rejected hidden from stranger", StatusRejected, stranger, false},
		{"rejected visible to owner", StatusRejected, owner, true},
		{"rejected visible to admin", StatusRejected, moderator, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{OwnerID: ownerID, Status: tc.status}
			assert.Equal(t, tc.expected, CanView(p, tc.viewer))
		})
	}
}

func TestLifecycleGuards(t *testing.T) {
	assert.True(t, CanEdit(StatusPending))
	assert.True(t, CanEdit(StatusRejected))
	assert.False(t, CanEdit(StatusApproved))

	assert.True(t, CanResubmit(StatusRejected))
	assert.False(t, CanResubmit(StatusPending))
	assert.False(t, CanResubmit(StatusApproved))

	assert.True(t, ValidStatus(StatusApproved))
	assert.False(t, ValidStatus(Status("archived")))
}
