package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devshowcase/showcase-backend/internal/tags"
)

// Filter narrows and orders project listings.
type Filter struct {
	Status       *Status
	OwnerID      *uuid.UUID
	TagSlugs     []string
	TechStack    []string
	Search       string
	FeaturedOnly bool
	SortBy       string // created_at, monthly_visitors, title
	SortAsc      bool
	Limit        int
	Offset       int
}

type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]Project, int64, error)
	ReplaceTags(ctx context.Context, project *Project, tagList []tags.Tag) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).Preload("Tags").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *gormRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error) {
	var result []Project
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gormRepository) Update(ctx context.Context, project *Project) error {
	// Save with Omit so the m2m rows are only touched via ReplaceTags.
	return r.db.WithContext(ctx).Omit("Tags").Save(project).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&Project{ID: id}).Error
}

func (r *gormRepository) ReplaceTags(ctx context.Context, project *Project, tagList []tags.Tag) error {
	return r.db.WithContext(ctx).Model(project).Association("Tags").Replace(tagList)
}

func (r *gormRepository) List(ctx context.Context, filter Filter) ([]Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&Project{})

	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("projects.owner_id = ?", *filter.OwnerID)
	}
	if filter.FeaturedOnly {
		query = query.Where("projects.is_featured = true")
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("projects.*")
	}
	for _, tech := range filter.TechStack {
		query = query.Where("projects.tech_stack::text ILIKE ?", "%"+tech+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("projects.title ILIKE ? OR projects.description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var result []Project
	if err := query.Preload("Tags").Find(&result).Error; err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

var sortColumns = map[string]string{
	"created_at":       "projects.created_at",
	"monthly_visitors": "projects.monthly_visitors",
	"title":            "projects.title",
}

func orderClause(filter Filter) string {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "projects.created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
