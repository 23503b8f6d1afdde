package competitions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devshowcase/showcase-backend/internal/projects"
)

type Repository interface {
	CreateCompetition(ctx context.Context, competition *Competition) error
	GetCompetition(ctx context.Context, id uuid.UUID) (*Competition, error)
	ListCompetitions(ctx context.Context) ([]Competition, error)
	DeleteCompetition(ctx context.Context, id uuid.UUID) error
	SetProjects(ctx context.Context, competition *Competition, members []projects.Project) error
	ProjectIDs(ctx context.Context, competitionID uuid.UUID) ([]uuid.UUID, error)
	ProjectCount(ctx context.Context, competitionID uuid.UUID) (int64, error)

	CreateAssignment(ctx context.Context, assignment *CompetitionReviewer) error
	DeleteAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) error
	GetAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) (*CompetitionReviewer, error)
	ListAssignments(ctx context.Context, reviewerID uuid.UUID) ([]CompetitionReviewer, error)
	UpdateAssignmentStatus(ctx context.Context, reviewerID, competitionID uuid.UUID, status ReviewStatus) (bool, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)

	GetRankings(ctx context.Context, reviewerID, competitionID uuid.UUID) ([]ProjectRanking, error)
	ReplaceRankings(ctx context.Context, reviewerID, competitionID uuid.UUID, orderedProjectIDs []uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateCompetition(ctx context.Context, competition *Competition) error {
	return r.db.WithContext(ctx).Omit("Projects").Create(competition).Error
}

func (r *gormRepository) GetCompetition(ctx context.Context, id uuid.UUID) (*Competition, error) {
	var competition Competition
	err := r.db.WithContext(ctx).Preload("Projects").First(&competition, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &competition, nil
}

func (r *gormRepository) ListCompetitions(ctx context.Context) ([]Competition, error) {
	var result []Competition
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Order("start_date DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gormRepository) DeleteCompetition(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", id).Delete(&ProjectRanking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competition_id = ?", id).Delete(&CompetitionReviewer{}).Error; err != nil {
			return err
		}
		return tx.Select("Projects").Delete(&Competition{ID: id}).Error
	})
}

func (r *gormRepository) SetProjects(ctx context.Context, competition *Competition, members []projects.Project) error {
	return r.db.WithContext(ctx).Model(competition).Association("Projects").Replace(members)
}

func (r *gormRepository) ProjectIDs(ctx context.Context, competitionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("competition_projects").
		Where("competition_id = ?", competitionID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gormRepository) ProjectCount(ctx context.Context, competitionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("competition_projects").
		Where("competition_id = ?", competitionID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateAssignment(ctx context.Context, assignment *CompetitionReviewer) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *gormRepository) DeleteAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).
			Delete(&ProjectRanking{}).Error; err != nil {
			return err
		}
		return tx.Where("reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).
			Delete(&CompetitionReviewer{}).Error
	})
}

func (r *gormRepository) GetAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) (*CompetitionReviewer, error) {
	var assignment CompetitionReviewer
	err := r.db.WithContext(ctx).
		First(&assignment, "reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *gormRepository) ListAssignments(ctx context.Context, reviewerID uuid.UUID) ([]CompetitionReviewer, error) {
	var result []CompetitionReviewer
	err := r.db.WithContext(ctx).
		Preload("Competition").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gormRepository) UpdateAssignmentStatus(ctx context.Context, reviewerID, competitionID uuid.UUID, status ReviewStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CompetitionReviewer{}).
		Where("reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&CompetitionReviewer{}).
		Where("status = ?", ReviewInProgress).
		Where("competition_id IN (?)",
			r.db.Model(&Competition{}).Select("id").Where("end_date < ?", now)).
		Update("status", ReviewCompleted)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) GetRankings(ctx context.Context, reviewerID, competitionID uuid.UUID) ([]ProjectRanking, error) {
	var result []ProjectRanking
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).
		Order("position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceRankings swaps the reviewer's stored order in one transaction so a
// concurrent reader never sees an empty or half-written ranking set.
func (r *gormRepository) ReplaceRankings(ctx context.Context, reviewerID, competitionID uuid.UUID, orderedProjectIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reviewer_id = ? AND competition_id = ?", reviewerID, competitionID).
			Delete(&ProjectRanking{}).Error; err != nil {
			return err
		}
		if len(orderedProjectIDs) == 0 {
			return nil
		}

		rankings := make([]ProjectRanking, 0, len(orderedProjectIDs))
		for i, projectID := range orderedProjectIDs {
			rankings = append(rankings, ProjectRanking{
				CompetitionID: competitionID,
				ReviewerID:    reviewerID,
				ProjectID:     projectID,
				Position:      i + 1,
			})
		}
		return tx.Create(&rankings).Error
	})
}
