package projects

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"devshowcase/showcase-backend/internal/tags"
)

// Status is the moderation lifecycle state of a project.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Project is a submitted showcase entry. The moderation fields
// (RejectionReason, ApprovedBy, ApprovedAt, IsFeatured) are only ever written
// through the mark* mutators so that RejectionReason is set iff rejected and
// the approval fields are set iff approved.
type Project struct {
	ID              uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title           string                      `gorm:"not null;index" json:"title"`
	Description     string                      `json:"description"`
	LongDescription string                      `json:"long_description,omitempty"`
	WebsiteURL      string                      `gorm:"not null" json:"website_url"`
	GithubURL       string                      `json:"github_url,omitempty"`
	DemoURL         string                      `json:"demo_url,omitempty"`
	ScreenshotURLs  datatypes.JSONSlice[string] `json:"screenshot_urls"`
	TechStack       datatypes.JSONSlice[string] `json:"tech_stack"`
	MonthlyVisitors int                         `gorm:"not null;default:0" json:"monthly_visitors"`
	Status          Status                      `gorm:"not null;default:'pending';index" json:"status"`
	RejectionReason *string                     `json:"rejection_reason,omitempty"`
	IsFeatured      bool                        `gorm:"not null;default:false" json:"is_featured"`
	SubmissionMonth string                      `gorm:"not null;index" json:"submission_month"` // YYYY-MM, stamped on create
	ApprovedAt      *time.Time                  `json:"approved_at,omitempty"`
	ApprovedBy      *uuid.UUID                  `gorm:"type:uuid" json:"approved_by,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`

	Tags []tags.Tag `gorm:"many2many:project_tags" json:"tags"`
}

// markApproved records an admin approval.
func (p *Project) markApproved(by uuid.UUID, featured bool) {
	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedBy = &by
	p.ApprovedAt = &now
	p.RejectionReason = nil
	p.IsFeatured = featured
}

// markRejected records an admin rejection. reason must be non-empty, checked
// by the service before the call.
func (p *Project) markRejected(reason string) {
	p.Status = StatusRejected
	p.RejectionReason = &reason
	p.ApprovedBy = nil
	p.ApprovedAt = nil
	p.IsFeatured = false
}

// markPending returns the project to the moderation queue.
func (p *Project) markPending() {
	p.Status = StatusPending
	p.RejectionReason = nil
	p.ApprovedBy = nil
	p.ApprovedAt = nil
	p.IsFeatured = false
}
