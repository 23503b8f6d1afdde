package competitions

import (
	"time"

	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/projects"
)

// ReviewStatus is a reviewer's progress on one competition.
type ReviewStatus string

const (
	ReviewInProgress ReviewStatus = "in_progress"
	ReviewCompleted  ReviewStatus = "completed"
)

// ValidReviewStatus reports whether s is a known review status.
func ValidReviewStatus(s ReviewStatus) bool {
	return s == ReviewInProgress || s == ReviewCompleted
}

// Competition is a curated set of projects reviewed by assigned reviewers.
// Membership is fixed by admin setup; reviewers never mutate it.
type Competition struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []projects.Project `gorm:"many2many:competition_projects" json:"-"`
}

// CompetitionReviewer joins a reviewer to a competition. The row's existence
// is the authorization record for all review actions on that competition.
type CompetitionReviewer struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompetitionID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_competition_reviewer" json:"competition_id"`
	ReviewerID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_competition_reviewer" json:"reviewer_id"`
	Status        ReviewStatus `gorm:"not null;default:'in_progress'" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Competition Competition `gorm:"foreignKey:CompetitionID" json:"-"`
}

// ProjectRanking is one slot of a reviewer's total order over a competition's
// projects. Positions within a (reviewer, competition) pair are a contiguous
// 1..k permutation, maintained by the bulk replace.
type ProjectRanking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewer_project_ranking" json:"competition_id"`
	ReviewerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewer_project_ranking" json:"reviewer_id"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviewer_project_ranking" json:"project_id"`
	Position      int       `gorm:"not null" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}
