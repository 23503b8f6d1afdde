package competitions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/projects"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCompetition(ctx context.Context, competition *Competition) error {
	args := m.Called(ctx, competition)
	return args.Error(0)
}

func (m *MockRepository) GetCompetition(ctx context.Context, id uuid.UUID) (*Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Competition), args.Error(1)
}

func (m *MockRepository) ListCompetitions(ctx context.Context) ([]Competition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Competition), args.Error(1)
}

func (m *MockRepository) DeleteCompetition(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetProjects(ctx context.Context, competition *Competition, members []projects.Project) error {
	args := m.Called(ctx, competition, members)
	return args.Error(0)
}

func (m *MockRepository) ProjectIDs(ctx context.Context, competitionID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) ProjectCount(ctx context.Context, competitionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateAssignment(ctx context.Context, assignment *CompetitionReviewer) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockRepository) DeleteAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) error {
	args := m.Called(ctx, reviewerID, competitionID)
	return args.Error(0)
}

func (m *MockRepository) GetAssignment(ctx context.Context, reviewerID, competitionID uuid.UUID) (*CompetitionReviewer, error) {
	args := m.Called(ctx, reviewerID, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CompetitionReviewer), args.Error(1)
}

func (m *MockRepository) ListAssignments(ctx context.Context, reviewerID uuid.UUID) ([]CompetitionReviewer, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]CompetitionReviewer), args.Error(1)
}

func (m *MockRepository) UpdateAssignmentStatus(ctx context.Context, reviewerID, competitionID uuid.UUID, status ReviewStatus) (bool, error) {
	args := m.Called(ctx, reviewerID, competitionID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetRankings(ctx context.Context, reviewerID, competitionID uuid.UUID) ([]ProjectRanking, error) {
	args := m.Called(ctx, reviewerID, competitionID)
	return args.Get(0).([]ProjectRanking), args.Error(1)
}

func (m *MockRepository) ReplaceRankings(ctx context.Context, reviewerID, competitionID uuid.UUID, orderedProjectIDs []uuid.UUID) error {
	args := m.Called(ctx, reviewerID, competitionID, orderedProjectIDs)
	return args.Error(0)
}

// MockProjectStore is a mock implementation of the ProjectStore interface
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]projects.Project, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]projects.Project), args.Error(1)
}

func newTestService(repo Repository, store ProjectStore) *Service {
	return NewService(repo, store, nil, zap.NewNop())
}

func reviewer() auth.Identity {
	return auth.Identity{UserID: uuid.New()}
}

func admin() auth.Identity {
	return auth.Identity{UserID: uuid.New(), IsAdmin: true}
}

func TestReplaceRankings(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()
	memberIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	ordered := []uuid.UUID{memberIDs[2], memberIDs[0]}

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{ReviewerID: judge.UserID, CompetitionID: competitionID, Status: ReviewInProgress}, nil)
	mockRepo.On("ProjectIDs", ctx, competitionID).Return(memberIDs, nil)
	mockRepo.On("ReplaceRankings", ctx, judge.UserID, competitionID, ordered).Return(nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, ordered)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestReplaceRankingsUnassignedReviewer(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).Return(nil, nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, []uuid.UUID{uuid.New()})

	// An unassigned reviewer must not learn the competition exists.
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "ReplaceRankings")
}

func TestReplaceRankingsCompletedReview(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{ReviewerID: judge.UserID, CompetitionID: competitionID, Status: ReviewCompleted}, nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, []uuid.UUID{uuid.New()})

	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "ReplaceRankings")
}

func TestReplaceRankingsRejectsForeignProjects(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()
	memberIDs := []uuid.UUID{uuid.New()}
	outsider := uuid.New()

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{Status: ReviewInProgress}, nil)
	mockRepo.On("ProjectIDs", ctx, competitionID).Return(memberIDs, nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, []uuid.UUID{memberIDs[0], outsider})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), outsider.String())
	// The stored rankings stay untouched on invalid input.
	mockRepo.AssertNotCalled(t, "ReplaceRankings")
}

func TestReplaceRankingsRejectsDuplicates(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()
	projectID := uuid.New()

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{Status: ReviewInProgress}, nil)
	mockRepo.On("ProjectIDs", ctx, competitionID).Return([]uuid.UUID{projectID}, nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, []uuid.UUID{projectID, projectID})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "ReplaceRankings")
}

func TestReplaceRankingsEmptyClearsAll(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{Status: ReviewInProgress}, nil)
	mockRepo.On("ProjectIDs", ctx, competitionID).Return([]uuid.UUID{uuid.New()}, nil)
	mockRepo.On("ReplaceRankings", ctx, judge.UserID, competitionID, []uuid.UUID{}).Return(nil)

	err := service.ReplaceRankings(ctx, judge, competitionID, []uuid.UUID{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetForReviewerAnnotatesOwnRankings(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()
	ranked := projects.Project{ID: uuid.New(), Title: "Ranked", Status: projects.StatusPending}
	unranked := projects.Project{ID: uuid.New(), Title: "Unranked", Status: projects.StatusApproved}
	competition := &Competition{
		ID:       competitionID,
		Name:     "Monthly Showcase",
		Projects: []projects.Project{ranked, unranked},
	}

	mockRepo.On("GetAssignment", ctx, judge.UserID, competitionID).
		Return(&CompetitionReviewer{Status: ReviewInProgress}, nil)
	mockRepo.On("GetCompetition", ctx, competitionID).Return(competition, nil)
	mockRepo.On("GetRankings", ctx, judge.UserID, competitionID).
		Return([]ProjectRanking{{ProjectID: ranked.ID, Position: 1}}, nil)

	detail, err := service.GetForReviewer(ctx, judge, competitionID)

	assert.NoError(t, err)
	// Reviewers see every member project regardless of moderation status.
	assert.Len(t, detail.Projects, 2)
	assert.Equal(t, 1, *detail.Projects[0].MyRanking)
	assert.Nil(t, detail.Projects[1].MyRanking)
	mockRepo.AssertExpectations(t)
}

func TestGetPublicFiltersUnapprovedProjects(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	competitionID := uuid.New()
	competition := &Competition{
		ID:   competitionID,
		Name: "Monthly Showcase",
		Projects: []projects.Project{
			{ID: uuid.New(), Title: "Public", Status: projects.StatusApproved},
			{ID: uuid.New(), Title: "Hidden", Status: projects.StatusPending},
		},
	}

	mockRepo.On("GetCompetition", ctx, competitionID).Return(competition, nil)

	view, err := service.GetPublic(ctx, competitionID)

	assert.NoError(t, err)
	assert.Len(t, view.Projects, 1)
	assert.Equal(t, "Public", view.Projects[0].Title)
}

func TestSetReviewStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	judge := reviewer()
	competitionID := uuid.New()

	mockRepo.On("UpdateAssignmentStatus", ctx, judge.UserID, competitionID, ReviewCompleted).
		Return(true, nil)

	err := service.SetReviewStatus(ctx, judge, competitionID, ReviewCompleted)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSetReviewStatusUnknownValue(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	err := service.SetReviewStatus(context.Background(), reviewer(), uuid.New(), ReviewStatus("paused"))

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "UpdateAssignmentStatus")
}

func TestCreateCompetitionValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	start := time.Now()

	_, err := service.Create(ctx, reviewer(), CompetitionInput{Name: "X", StartDate: start, EndDate: start})
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	_, err = service.Create(ctx, admin(), CompetitionInput{Name: " ", StartDate: start, EndDate: start})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = service.Create(ctx, admin(), CompetitionInput{Name: "X", StartDate: start, EndDate: start.Add(-time.Hour)})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAssignReviewerTwiceFails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockProjectStore))

	ctx := context.Background()
	competitionID := uuid.New()
	reviewerID := uuid.New()

	mockRepo.On("GetCompetition", ctx, competitionID).Return(&Competition{ID: competitionID}, nil)
	mockRepo.On("GetAssignment", ctx, reviewerID, competitionID).
		Return(&CompetitionReviewer{ReviewerID: reviewerID, CompetitionID: competitionID}, nil)

	_, err := service.AssignReviewer(ctx, admin(), competitionID, reviewerID)

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "CreateAssignment")
}

func TestSetProjectsRejectsUnknownIDs(t *testing.T) {
	mockRepo := new(MockRepository)
	mockStore := new(MockProjectStore)
	service := newTestService(mockRepo, mockStore)

	ctx := context.Background()
	competitionID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mockRepo.On("GetCompetition", ctx, competitionID).Return(&Competition{ID: competitionID}, nil)
	mockStore.On("GetByIDs", ctx, ids).Return([]projects.Project{{ID: ids[0]}}, nil)

	err := service.SetProjects(ctx, admin(), competitionID, ids)

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "SetProjects")
}
