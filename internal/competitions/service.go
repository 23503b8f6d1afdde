package competitions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/projects"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// ProjectStore is the slice of the projects repository the service needs for
// admin competition setup.
type ProjectStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]projects.Project, error)
}

// ImageResolver resolves the display image for a set of projects: the main
// uploaded image, else the first uploaded one.
type ImageResolver interface {
	MainImageURLs(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type Service struct {
	repo         Repository
	projectStore ProjectStore
	images       ImageResolver // may be nil
	logger       *zap.Logger
}

func NewService(repo Repository, projectStore ProjectStore, images ImageResolver, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		projectStore: projectStore,
		images:       images,
		logger:       logger,
	}
}

// ReviewCompetition is one assignment in the reviewer's competition list.
type ReviewCompetition struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	ProjectCount   int64        `json:"project_count"`
	MyReviewStatus ReviewStatus `json:"my_review_status"`
}

// ReviewProject is a competition project annotated with the calling
// reviewer's own ranking. Other reviewers' positions are never included.
type ReviewProject struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	WebsiteURL   string    `json:"website_url"`
	MainImageURL *string   `json:"main_image_url"`
	MyRanking    *int      `json:"my_ranking"`
}

// ReviewCompetitionDetail is the reviewer-facing competition read assembly.
// Projects are listed regardless of approval status: reviewers judge
// submissions, not the public gallery.
type ReviewCompetitionDetail struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	MyReviewStatus ReviewStatus    `json:"my_review_status"`
	Projects       []ReviewProject `json:"projects"`
}

// PublicProject is a competition project in the public read assembly.
type PublicProject struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	MainImageURL *string   `json:"main_image_url"`
}

// PublicCompetition is the anonymous-facing competition view; only approved
// projects appear.
type PublicCompetition struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Projects  []PublicProject `json:"projects"`
}

// ListAssignments lists the competitions the reviewer is assigned to together
// with that reviewer's status.
func (s *Service) ListAssignments(ctx context.Context, reviewer auth.Identity) ([]ReviewCompetition, error) {
	assignments, err := s.repo.ListAssignments(ctx, reviewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	result := make([]ReviewCompetition, 0, len(assignments))
	for _, a := range assignments {
		count, err := s.repo.ProjectCount(ctx, a.CompetitionID)
		if err != nil {
			return nil, fmt.Errorf("count competition projects: %w", err)
		}
		result = append(result, ReviewCompetition{
			ID:             a.Competition.ID,
			Name:           a.Competition.Name,
			StartDate:      a.Competition.StartDate,
			EndDate:        a.Competition.EndDate,
			ProjectCount:   count,
			MyReviewStatus: a.Status,
		})
	}
	return result, nil
}

// GetForReviewer assembles a competition for one reviewer: metadata, all
// member projects, and the reviewer's own positions. An unassigned reviewer
// gets not-found, indistinguishable from a missing competition.
func (s *Service) GetForReviewer(ctx context.Context, reviewer auth.Identity, competitionID uuid.UUID) (*ReviewCompetitionDetail, error) {
	assignment, err := s.requireAssignment(ctx, reviewer, competitionID)
	if err != nil {
		return nil, err
	}

	competition, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if competition == nil {
		return nil, apperrors.NotFound("competition not found")
	}

	positions, err := s.RankingsFor(ctx, reviewer, competitionID)
	if err != nil {
		return nil, err
	}
	imageURLs, err := s.mainImageURLs(ctx, competition.Projects)
	if err != nil {
		return nil, err
	}

	detail := &ReviewCompetitionDetail{
		ID:             competition.ID,
		Name:           competition.Name,
		StartDate:      competition.StartDate,
		EndDate:        competition.EndDate,
		MyReviewStatus: assignment.Status,
		Projects:       make([]ReviewProject, 0, len(competition.Projects)),
	}
	for _, p := range competition.Projects {
		entry := ReviewProject{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			WebsiteURL:  p.WebsiteURL,
		}
		if url, ok := imageURLs[p.ID]; ok {
			entry.MainImageURL = &url
		}
		if position, ok := positions[p.ID]; ok {
			ranking := position
			entry.MyRanking = &ranking
		}
		detail.Projects = append(detail.Projects, entry)
	}
	return detail, nil
}

// SetReviewStatus updates the reviewer's own progress on a competition.
func (s *Service) SetReviewStatus(ctx context.Context, reviewer auth.Identity, competitionID uuid.UUID, status ReviewStatus) error {
	if !ValidReviewStatus(status) {
		return apperrors.Validation("unknown review status %q", status)
	}
	updated, err := s.repo.UpdateAssignmentStatus(ctx, reviewer.UserID, competitionID, status)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}
	if !updated {
		return apperrors.NotFound("competition not found")
	}
	return nil
}

// ReplaceRankings atomically swaps the reviewer's total order over the
// competition's projects. Position is the 1-based index in the input order.
func (s *Service) ReplaceRankings(ctx context.Context, reviewer auth.Identity, competitionID uuid.UUID, orderedProjectIDs []uuid.UUID) error {
	assignment, err := s.requireAssignment(ctx, reviewer, competitionID)
	if err != nil {
		return err
	}
	if assignment.Status == ReviewCompleted {
		return apperrors.InvalidState("cannot update rankings for a completed review")
	}

	memberIDs, err := s.repo.ProjectIDs(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("load competition projects: %w", err)
	}
	if err := validateRankingInput(orderedProjectIDs, memberIDs); err != nil {
		return err
	}

	if err := s.repo.ReplaceRankings(ctx, reviewer.UserID, competitionID, orderedProjectIDs); err != nil {
		return fmt.Errorf("replace rankings: %w", err)
	}

	s.logger.Info("rankings replaced",
		zap.String("competition_id", competitionID.String()),
		zap.String("reviewer_id", reviewer.UserID.String()),
		zap.Int("ranked", len(orderedProjectIDs)))
	return nil
}

// RankingsFor returns the calling reviewer's project positions, keyed by
// project id. Filtering on the reviewer id at the query boundary is what
// keeps rankings private between reviewers.
func (s *Service) RankingsFor(ctx context.Context, reviewer auth.Identity, competitionID uuid.UUID) (map[uuid.UUID]int, error) {
	rankings, err := s.repo.GetRankings(ctx, reviewer.UserID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get rankings: %w", err)
	}
	positions := make(map[uuid.UUID]int, len(rankings))
	for _, r := range rankings {
		positions[r.ProjectID] = r.Position
	}
	return positions, nil
}

// ListPublic lists all competitions with their approved projects.
func (s *Service) ListPublic(ctx context.Context) ([]PublicCompetition, error) {
	competitions, err := s.repo.ListCompetitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	result := make([]PublicCompetition, 0, len(competitions))
	for i := range competitions {
		view, err := s.publicView(ctx, &competitions[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}
	return result, nil
}

// GetPublic returns the anonymous-facing view of one competition.
func (s *Service) GetPublic(ctx context.Context, competitionID uuid.UUID) (*PublicCompetition, error) {
	competition, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if competition == nil {
		return nil, apperrors.NotFound("competition not found")
	}
	return s.publicView(ctx, competition)
}

// CompetitionInput is the admin competition setup payload.
type CompetitionInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Create adds a competition. Admin only.
func (s *Service) Create(ctx context.Context, admin auth.Identity, input CompetitionInput) (*Competition, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("competition name is required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.Validation("end_date must not precede start_date")
	}

	competition := &Competition{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.CreateCompetition(ctx, competition); err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}
	return competition, nil
}

// SetProjects replaces a competition's project membership. Admin only.
func (s *Service) SetProjects(ctx context.Context, admin auth.Identity, competitionID uuid.UUID, projectIDs []uuid.UUID) error {
	if !admin.IsAdmin {
		return apperrors.PermissionDenied("admin access required")
	}
	competition, err := s.mustGet(ctx, competitionID)
	if err != nil {
		return err
	}

	members, err := s.projectStore.GetByIDs(ctx, projectIDs)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	if len(members) != len(uniqueIDs(projectIDs)) {
		return apperrors.Validation("one or more project IDs are invalid")
	}

	if err := s.repo.SetProjects(ctx, competition, members); err != nil {
		return fmt.Errorf("set competition projects: %w", err)
	}
	return nil
}

// AssignReviewer adds a reviewer to a competition. Admin only.
func (s *Service) AssignReviewer(ctx context.Context, admin auth.Identity, competitionID, reviewerID uuid.UUID) (*CompetitionReviewer, error) {
	if !admin.IsAdmin {
		return nil, apperrors.PermissionDenied("admin access required")
	}
	if _, err := s.mustGet(ctx, competitionID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAssignment(ctx, reviewerID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Validation("reviewer is already assigned to this competition")
	}

	assignment := &CompetitionReviewer{
		CompetitionID: competitionID,
		ReviewerID:    reviewerID,
		Status:        ReviewInProgress,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return assignment, nil
}

// UnassignReviewer removes a reviewer and their rankings. Admin only.
func (s *Service) UnassignReviewer(ctx context.Context, admin auth.Identity, competitionID, reviewerID uuid.UUID) error {
	if !admin.IsAdmin {
		return apperrors.PermissionDenied("admin access required")
	}
	existing, err := s.repo.GetAssignment(ctx, reviewerID, competitionID)
	if err != nil {
		return fmt.Errorf("get assignment: %w", err)
	}
	if existing == nil {
		return apperrors.NotFound("assignment not found")
	}
	if err := s.repo.DeleteAssignment(ctx, reviewerID, competitionID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// Delete removes a competition together with its assignments and rankings.
// Admin only.
func (s *Service) Delete(ctx context.Context, admin auth.Identity, competitionID uuid.UUID) error {
	if !admin.IsAdmin {
		return apperrors.PermissionDenied("admin access required")
	}
	if _, err := s.mustGet(ctx, competitionID); err != nil {
		return err
	}
	if err := s.repo.DeleteCompetition(ctx, competitionID); err != nil {
		return fmt.Errorf("delete competition: %w", err)
	}
	return nil
}

// CompleteExpiredReviews marks in-progress reviews of competitions past their
// end date as completed. Run by the scheduler.
func (s *Service) CompleteExpiredReviews(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.CompleteExpired(ctx, now)
}

func (s *Service) requireAssignment(ctx context.Context, reviewer auth.Identity, competitionID uuid.UUID) (*CompetitionReviewer, error) {
	assignment, err := s.repo.GetAssignment(ctx, reviewer.UserID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	if assignment == nil {
		// Unassigned reviewers are told the competition does not exist.
		return nil, apperrors.NotFound("competition not found")
	}
	return assignment, nil
}

func (s *Service) mustGet(ctx context.Context, competitionID uuid.UUID) (*Competition, error) {
	competition, err := s.repo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if competition == nil {
		return nil, apperrors.NotFound("competition not found")
	}
	return competition, nil
}

func (s *Service) publicView(ctx context.Context, competition *Competition) (*PublicCompetition, error) {
	approved := make([]projects.Project, 0, len(competition.Projects))
	for _, p := range competition.Projects {
		if p.Status == projects.StatusApproved {
			approved = append(approved, p)
		}
	}
	imageURLs, err := s.mainImageURLs(ctx, approved)
	if err != nil {
		return nil, err
	}

	view := &PublicCompetition{
		ID:        competition.ID,
		Name:      competition.Name,
		StartDate: competition.StartDate,
		EndDate:   competition.EndDate,
		Projects:  make([]PublicProject, 0, len(approved)),
	}
	for _, p := range approved {
		entry := PublicProject{ID: p.ID, Title: p.Title}
		if url, ok := imageURLs[p.ID]; ok {
			entry.MainImageURL = &url
		}
		view.Projects = append(view.Projects, entry)
	}
	return view, nil
}

func (s *Service) mainImageURLs(ctx context.Context, members []projects.Project) (map[uuid.UUID]string, error) {
	if s.images == nil || len(members) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, p := range members {
		ids = append(ids, p.ID)
	}
	urls, err := s.images.MainImageURLs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve images: %w", err)
	}
	return urls, nil
}

// validateRankingInput rejects ids outside the competition and duplicate ids.
// Duplicates would break the contiguous 1..k positions the replace maintains.
func validateRankingInput(orderedProjectIDs, memberIDs []uuid.UUID) error {
	members := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	seen := make(map[uuid.UUID]bool, len(orderedProjectIDs))
	var invalid []string
	for _, id := range orderedProjectIDs {
		if seen[id] {
			return apperrors.Validation("duplicate project ID %s in rankings", id)
		}
		seen[id] = true
		if !members[id] {
			invalid = append(invalid, id.String())
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return apperrors.Validation("one or more projects do not belong to this competition: %s",
			strings.Join(invalid, ", "))
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
