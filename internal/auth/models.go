package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Admins moderate projects and manage
// competitions; everyone else submits projects and may be assigned as a
// competition reviewer.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the resolved caller of a request. A zero Identity (Nil UserID)
// is an anonymous viewer.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// Anonymous reports whether the identity belongs to no authenticated user.
func (i Identity) Anonymous() bool {
	return i.UserID == uuid.Nil
}
