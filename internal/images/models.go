package images

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus tracks whether the owner has completed the S3 upload the
// presigned URL was issued for.
type UploadStatus string

const (
	UploadPending  UploadStatus = "pending"
	UploadComplete UploadStatus = "uploaded"
)

// ProjectImage is one screenshot or photo attached to a project. Only
// uploaded images are shown; the main image (or the first uploaded one) is
// the project's display image.
type ProjectImage struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	S3Key        string       `gorm:"not null" json:"-"`
	URL          string       `gorm:"not null" json:"url"`
	UploadStatus UploadStatus `gorm:"not null;default:'pending'" json:"upload_status"`
	IsMain       bool         `gorm:"not null;default:false" json:"is_main"`
	Position     int          `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
