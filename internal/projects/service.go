package projects

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/tags"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// Input carries the owner-editable content fields.
type Input struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	LongDescription string      `json:"long_description"`
	WebsiteURL      string      `json:"website_url"`
	GithubURL       string      `json:"github_url"`
	DemoURL         string      `json:"demo_url"`
	ScreenshotURLs  []string    `json:"screenshot_urls"`
	TechStack       []string    `json:"tech_stack"`
	TagIDs          []uuid.UUID `json:"tag_ids"`
}

// TagStore is the slice of the tags repository the service needs.
type TagStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]tags.Tag, error)
}

// Notifier is told about moderation decisions so owners can be informed.
type Notifier interface {
	ProjectModerated(ctx context.Context, ownerID, projectID uuid.UUID, title string, approved bool, reason string)
}

type Service struct {
	repo     Repository
	tagStore TagStore
	notifier Notifier // may be nil
	logger   *zap.Logger
}

func NewService(repo Repository, tagStore TagStore, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		tagStore: tagStore,
		notifier: notifier,
		logger:   logger,
	}
}

// Create submits a new project. It starts pending with the submission month
// stamped; the month never changes afterwards.
func (s *Service) Create(ctx context.Context, owner auth.Identity, input Input) (*Project, error) {
	if owner.Anonymous() {
		return nil, apperrors.PermissionDenied("authentication required")
	}
	if strings.TrimSpace(input.WebsiteURL) == "" {
		return nil, apperrors.Validation("website_url is required")
	}

	tagList, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}

	project := &Project{
		OwnerID:         owner.UserID,
		Title:           input.Title,
		Description:     input.Description,
		LongDescription: input.LongDescription,
		WebsiteURL:      input.WebsiteURL,
		GithubURL:       input.GithubURL,
		DemoURL:         input.DemoURL,
		ScreenshotURLs:  input.ScreenshotURLs,
		TechStack:       input.TechStack,
		Status:          StatusPending,
		SubmissionMonth: time.Now().Format("2006-01"),
	}
	if project.Title == "" {
		project.Title = titleFromURL(input.WebsiteURL)
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if len(tagList) > 0 {
		if err := s.repo.ReplaceTags(ctx, project, tagList); err != nil {
			return nil, fmt.Errorf("set tags: %w", err)
		}
		project.Tags = tagList
	}

	s.logger.Info("project submitted",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", owner.UserID.String()))
	return project, nil
}

// UpdateContent edits the content fields. Only the owner (or an admin) may
// edit, and only while the project is pending or rejected. Editing a rejected
// project implicitly resubmits it.
func (s *Service) UpdateContent(ctx context.Context, editor auth.Identity, id uuid.UUID, input Input) (*Project, error) {
	project, err := s.getEditable(ctx, editor, id)
	if err != nil {
		return nil, err
	}

	tagList, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Description = input.Description
	project.LongDescription = input.LongDescription
	project.WebsiteURL = input.WebsiteURL
	project.GithubURL = input.GithubURL
	project.DemoURL = input.DemoURL
	project.ScreenshotURLs = input.ScreenshotURLs
	project.TechStack = input.TechStack
	if project.Title == "" {
		project.Title = titleFromURL(input.WebsiteURL)
	}

	if project.Status == StatusRejected {
		project.markPending()
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if err := s.repo.ReplaceTags(ctx, project, tagList); err != nil {
		return nil, fmt.Errorf("set tags: %w", err)
	}
	project.Tags = tagList
	return project, nil
}

// Delete removes a project. Same guard as UpdateContent.
func (s *Service) Delete(ctx context.Context, editor auth.Identity, id uuid.UUID) error {
	project, err := s.getEditable(ctx, editor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.logger.Info("project deleted",
		zap.String("project_id", id.String()),
		zap.String("user_id", editor.UserID.String()))
	return nil
}

// Resubmit puts a rejected project back in the moderation queue. Owner only.
func (s *Service) Resubmit(ctx context.Context, owner auth.Identity, id uuid.UUID) (*Project, error) {
	project, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !CanResubmit(project.Status) {
		return nil, apperrors.InvalidState("only rejected projects can be resubmitted")
	}

	project.markPending()
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Approve marks a project approved. Admin only, allowed from any state.
func (s *Service) Approve(ctx context.Context, admin auth.Identity, id uuid.UUID, featured bool) (*Project, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	project.markApproved(admin.UserID, featured)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info("project approved",
		zap.String("project_id", project.ID.String()),
		zap.String("admin_id", admin.UserID.String()),
		zap.Bool("featured", featured))
	if s.notifier != nil {
		s.notifier.ProjectModerated(ctx, project.OwnerID, project.ID, project.Title, true, "")
	}
	return project, nil
}

// Reject marks a project rejected with a reason. Admin only.
func (s *Service) Reject(ctx context.Context, admin auth.Identity, id uuid.UUID, reason string) (*Project, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("a rejection reason is required")
	}
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	project.markRejected(reason)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info("project rejected",
		zap.String("project_id", project.ID.String()),
		zap.String("admin_id", admin.UserID.String()))
	if s.notifier != nil {
		s.notifier.ProjectModerated(ctx, project.OwnerID, project.ID, project.Title, false, reason)
	}
	return project, nil
}

// ToggleFeatured flips the featured flag of an approved project. Admin only.
func (s *Service) ToggleFeatured(ctx context.Context, admin auth.Identity, id uuid.UUID) (*Project, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Status != StatusApproved {
		return nil, apperrors.InvalidState("only approved projects can be featured")
	}

	project.IsFeatured = !project.IsFeatured
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Get fetches one project subject to the visibility policy. A project the
// viewer may not see is reported as not found.
func (s *Service) Get(ctx context.Context, viewer auth.Identity, id uuid.UUID) (*Project, error) {
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(project, viewer) {
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}

// PublicListQuery narrows the public project listing.
type PublicListQuery struct {
	TagSlugs  []string
	TechStack []string
	Search    string
	SortBy    string
	SortAsc   bool
	Page      int
	PerPage   int
}

// ListPublic lists approved projects only.
func (s *Service) ListPublic(ctx context.Context, q PublicListQuery) ([]Project, int64, error) {
	status := StatusApproved
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
	return s.repo.List(ctx, Filter{
		Status:    &status,
		TagSlugs:  q.TagSlugs,
		TechStack: q.TechStack,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortAsc:   q.SortAsc,
		Limit:     q.PerPage,
		Offset:    (q.Page - 1) * q.PerPage,
	})
}

// ListFeatured returns up to ten featured approved projects.
func (s *Service) ListFeatured(ctx context.Context) ([]Project, error) {
	status := StatusApproved
	result, _, err := s.repo.List(ctx, Filter{Status: &status, FeaturedOnly: true, Limit: 10})
	return result, err
}

// ListTrending returns the ten approved projects with the most monthly visitors.
func (s *Service) ListTrending(ctx context.Context) ([]Project, error) {
	status := StatusApproved
	result, _, err := s.repo.List(ctx, Filter{Status: &status, SortBy: "monthly_visitors", Limit: 10})
	return result, err
}

// ListMine lists every project of the caller regardless of status.
func (s *Service) ListMine(ctx context.Context, owner auth.Identity) ([]Project, error) {
	result, _, err := s.repo.List(ctx, Filter{OwnerID: &owner.UserID})
	return result, err
}

// GetMine fetches one of the caller's own projects.
func (s *Service) GetMine(ctx context.Context, owner auth.Identity, id uuid.UUID) (*Project, error) {
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != owner.UserID {
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}

// ListAdmin lists all projects with an optional status filter. Admin only.
func (s *Service) ListAdmin(ctx context.Context, admin auth.Identity, status *Status, limit, offset int) ([]Project, int64, error) {
	if !admin.IsAdmin {
		return nil, 0, apperrors.PermissionDenied("admin access required")
	}
	if status != nil && !ValidStatus(*status) {
		return nil, 0, apperrors.Validation("unknown status %q", *status)
	}
	return s.repo.List(ctx, Filter{Status: status, Limit: limit, Offset: offset})
}

// GetAdmin fetches any project for review. Admin only.
func (s *Service) GetAdmin(ctx context.Context, admin auth.Identity, id uuid.UUID) (*Project, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	return s.mustGet(ctx, id)
}

// CheckEditable reports whether editor may mutate the project's attachments,
// applying the same ownership and lifecycle guards as a content update.
func (s *Service) CheckEditable(ctx context.Context, editor auth.Identity, id uuid.UUID) error {
	_, err := s.getEditable(ctx, editor, id)
	return err
}

func (s *Service) mustGet(ctx context.Context, id uuid.UUID) (*Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}

// getOwned fetches a project for an owner-only action. A non-owner gets
// not-found, except an admin who gets an explicit denial since the project is
// already visible to them.
func (s *Service) getOwned(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Project, error) {
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != caller.UserID {
		if caller.IsAdmin {
			return nil, apperrors.PermissionDenied("only the project owner may do this")
		}
		return nil, apperrors.NotFound("project not found")
	}
	return project, nil
}

// getEditable fetches a project for a content mutation: owner or admin, and
// only while the lifecycle state allows edits.
func (s *Service) getEditable(ctx context.Context, editor auth.Identity, id uuid.UUID) (*Project, error) {
	project, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != editor.UserID && !editor.IsAdmin {
		return nil, apperrors.NotFound("project not found")
	}
	if !CanEdit(project.Status) {
		return nil, apperrors.InvalidState("cannot modify approved project")
	}
	return project, nil
}

func (s *Service) resolveTags(ctx context.Context, ids []uuid.UUID) ([]tags.Tag, error) {
	if len(ids) == 0 {
		return []tags.Tag{}, nil
	}
	tagList, err := s.tagStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	if len(tagList) != len(ids) {
		return nil, apperrors.Validation("one or more tag IDs are invalid")
	}
	return tagList, nil
}

// titleFromURL derives a display title from the website URL when the owner
// left the title blank. GitHub URLs use the repository name.
func titleFromURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "Untitled Project"
	}
	domain := parsed.Host
	if domain == "" {
		domain = parsed.Path
	}
	domain = strings.TrimPrefix(domain, "www.")

	if domain == "github.com" {
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	if domain == "" {
		return "Untitled Project"
	}
	return domain
}
