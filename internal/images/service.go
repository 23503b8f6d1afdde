package images

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// ProjectGuard applies the project ownership and lifecycle checks before an
// image mutation. Implemented by the projects service.
type ProjectGuard interface {
	CheckEditable(ctx context.Context, editor auth.Identity, projectID uuid.UUID) error
}

type Service struct {
	repo    Repository
	storage Storage
	guard   ProjectGuard
}

func NewService(repo Repository, storage Storage, guard ProjectGuard) *Service {
	return &Service{repo: repo, storage: storage, guard: guard}
}

// UploadGrant is a presigned upload slot for one image.
type UploadGrant struct {
	Image     *ProjectImage `json:"image"`
	UploadURL string        `json:"upload_url"`
}

// RequestUpload creates a pending image record and a presigned PUT URL for
// it. The image only becomes visible once ConfirmUpload is called.
func (s *Service) RequestUpload(ctx context.Context, editor auth.Identity, projectID uuid.UUID, filename string) (*UploadGrant, error) {
	if err := s.guard.CheckEditable(ctx, editor, projectID); err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return nil, apperrors.Validation("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("projects/%s/%s%s", projectID, uuid.New(), ext)
	image := &ProjectImage{
		ProjectID:    projectID,
		S3Key:        key,
		URL:          s.storage.PublicURL(key),
		UploadStatus: UploadPending,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}

	uploadURL, err := s.storage.PresignUpload(ctx, key)
	if err != nil {
		return nil, err
	}
	return &UploadGrant{Image: image, UploadURL: uploadURL}, nil
}

// ConfirmUpload marks the image as uploaded after the client completed the
// presigned PUT.
func (s *Service) ConfirmUpload(ctx context.Context, editor auth.Identity, imageID uuid.UUID) (*ProjectImage, error) {
	image, err := s.getEditable(ctx, editor, imageID)
	if err != nil {
		return nil, err
	}
	image.UploadStatus = UploadComplete
	if err := s.repo.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return image, nil
}

// SetMain makes the image the project's display image.
func (s *Service) SetMain(ctx context.Context, editor auth.Identity, imageID uuid.UUID) (*ProjectImage, error) {
	image, err := s.getEditable(ctx, editor, imageID)
	if err != nil {
		return nil, err
	}
	if image.UploadStatus != UploadComplete {
		return nil, apperrors.InvalidState("image has not been uploaded yet")
	}

	if err := s.repo.ClearMain(ctx, image.ProjectID); err != nil {
		return nil, fmt.Errorf("clear main image: %w", err)
	}
	image.IsMain = true
	if err := s.repo.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return image, nil
}

// Delete removes an image record.
func (s *Service) Delete(ctx context.Context, editor auth.Identity, imageID uuid.UUID) error {
	image, err := s.getEditable(ctx, editor, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, image.ID); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// ListForProject lists a project's images for its owner.
func (s *Service) ListForProject(ctx context.Context, editor auth.Identity, projectID uuid.UUID) ([]ProjectImage, error) {
	if err := s.guard.CheckEditable(ctx, editor, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// MainImageURLs resolves each project's display image: the main uploaded
// image, or the first uploaded one when no main is set.
func (s *Service) MainImageURLs(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(projectIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	uploaded, err := s.repo.ListUploadedByProjects(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	result := make(map[uuid.UUID]string)
	for _, image := range uploaded {
		if image.IsMain {
			result[image.ProjectID] = image.URL
			continue
		}
		if _, ok := result[image.ProjectID]; !ok {
			result[image.ProjectID] = image.URL
		}
	}
	return result, nil
}

func (s *Service) getEditable(ctx context.Context, editor auth.Identity, imageID uuid.UUID) (*ProjectImage, error) {
	image, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	if image == nil {
		return nil, apperrors.NotFound("image not found")
	}
	if err := s.guard.CheckEditable(ctx, editor, image.ProjectID); err != nil {
		return nil, err
	}
	return image, nil
}
