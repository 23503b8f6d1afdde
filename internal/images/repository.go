package images

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, image *ProjectImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectImage, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectImage, error)
	ListUploadedByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]ProjectImage, error)
	Update(ctx context.Context, image *ProjectImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearMain(ctx context.Context, projectID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, image *ProjectImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*ProjectImage, error) {
	var image ProjectImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *gormRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectImage, error) {
	var result []ProjectImage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gormRepository) ListUploadedByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]ProjectImage, error) {
	var result []ProjectImage
	err := r.db.WithContext(ctx).
		Where("project_id IN ? AND upload_status = ?", projectIDs, UploadComplete).
		Order("position ASC, created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gormRepository) Update(ctx context.Context, image *ProjectImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ProjectImage{}, "id = ?", id).Error
}

func (r *gormRepository) ClearMain(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&ProjectImage{}).
		Where("project_id = ?", projectID).
		Update("is_main", false).Error
}
