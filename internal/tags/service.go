package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/pkg/apperrors"
)

type TagInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Tag, error) {
	return s.repo.List(ctx)
}

// Create adds a tag. Admin only.
func (s *Service) Create(ctx context.Context, caller auth.Identity, input TagInput) (*Tag, error) {
	if !caller.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	if err := s.validate(ctx, input, uuid.Nil); err != nil {
		return nil, err
	}

	tag := &Tag{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// Update edits a tag. Admin only.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, input TagInput) (*Tag, error) {
	if !caller.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return nil, apperrors.NotFound("tag not found")
	}
	if err := s.validate(ctx, input, id); err != nil {
		return nil, err
	}

	tag.Name = input.Name
	tag.Slug = input.Slug
	tag.Description = input.Description
	tag.Color = input.Color
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes a tag. Admin only.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.IsAdmin {
		return apperrors.PermissionDenied("admin access required")
	}
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return apperrors.NotFound("tag not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, input TagInput, exclude uuid.UUID) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Slug) == "" {
		return apperrors.Validation("tag name and slug are required")
	}
	if taken, err := s.repo.ExistsByName(ctx, input.Name, exclude); err != nil {
		return fmt.Errorf("check tag name: %w", err)
	} else if taken {
		return apperrors.Validation("tag with this name already exists")
	}
	if taken, err := s.repo.ExistsBySlug(ctx, input.Slug, exclude); err != nil {
		return fmt.Errorf("check tag slug: %w", err)
	} else if taken {
		return apperrors.Validation("tag with this slug already exists")
	}
	return nil
}
