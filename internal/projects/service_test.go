package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/tags"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, project *Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Project), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]Project), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, project *Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Project, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ReplaceTags(ctx context.Context, project *Project, tagList []tags.Tag) error {
	args := m.Called(ctx, project, tagList)
	return args.Error(0)
}

// MockTagStore is a mock implementation of the TagStore interface
type MockTagStore struct {
	mock.Mock
}

func (m *MockTagStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]tags.Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]tags.Tag), args.Error(1)
}

// recordingNotifier captures moderation notifications
type recordingNotifier struct {
	ownerIDs []uuid.UUID
	approved []bool
	reasons  []string
}

func (n *recordingNotifier) ProjectModerated(ctx context.Context, ownerID, projectID uuid.UUID, title string, approved bool, reason string) {
	n.ownerIDs = append(n.ownerIDs, ownerID)
	n.approved = append(n.approved, approved)
	n.reasons = append(n.reasons, reason)
}

func newTestService(repo Repository, tagStore TagStore, notifier Notifier) *Service {
	return NewService(repo, tagStore, notifier, zap.NewNop())
}

func member() auth.Identity {
	return auth.Identity{UserID: uuid.New()}
}

func admin() auth.Identity {
	return auth.Identity{UserID: uuid.New(), IsAdmin: true}
}

func TestCreateStartsPending(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*projects.Project")).Return(nil)

	project, err := service.Create(ctx, owner, Input{
		Title:      "My Project",
		WebsiteURL: "https://example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, project.Status)
	assert.Equal(t, owner.UserID, project.OwnerID)
	assert.Equal(t, time.Now().Format("2006-01"), project.SubmissionMonth)
	assert.Nil(t, project.RejectionReason)
	assert.Nil(t, project.ApprovedBy)
	mockRepo.AssertExpectations(t)
}

func TestCreateRequiresWebsiteURL(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockTagStore), nil)

	_, err := service.Create(context.Background(), member(), Input{Title: "No URL"})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateRejectsUnknownTags(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTags := new(MockTagStore)
	service := newTestService(mockRepo, mockTags, nil)

	ctx := context.Background()
	tagIDs := []uuid.UUID{uuid.New(), uuid.New()}
	// Only one of the two IDs exists.
	mockTags.On("GetByIDs", ctx, tagIDs).Return([]tags.Tag{{ID: tagIDs[0]}}, nil)

	_, err := service.Create(ctx, member(), Input{
		WebsiteURL: "https://example.com",
		TagIDs:     tagIDs,
	})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestTitleFromURL(t *testing.T) {
	cases := []struct {
		url      string
		expected string
	}{
		{"https://www.example.com", "example.com"},
		{"example.com", "example.com"},
		{"https://github.com/someone/cool-repo", "cool-repo"},
		{"https://github.com/justuser", "github.com"},
		{"", "Untitled Project"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, titleFromURL(tc.url), "url %q", tc.url)
	}
}

func TestApproveSetsModerationFields(t *testing.T) {
	mockRepo := new(MockRepository)
	notifier := &recordingNotifier{}
	service := newTestService(mockRepo, new(MockTagStore), notifier)

	ctx := context.Background()
	reviewer := admin()
	reason := "needs work"
	project := &Project{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		Title:           "Submission",
		Status:          StatusRejected,
		RejectionReason: &reason,
	}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)
	mockRepo.On("Update", ctx, project).Return(nil)

	result, err := service.Approve(ctx, reviewer, project.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, result.Status)
	assert.Equal(t, reviewer.UserID, *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
	assert.Nil(t, result.RejectionReason)
	assert.True(t, result.IsFeatured)
	assert.Equal(t, []bool{true}, notifier.approved)
	assert.Equal(t, []uuid.UUID{project.OwnerID}, notifier.ownerIDs)
	mockRepo.AssertExpectations(t)
}

func TestApproveRequiresAdmin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	_, err := service.Approve(context.Background(), member(), uuid.New(), false)

	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "GetByID")
}

func TestRejectRequiresReason(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	_, err := service.Reject(context.Background(), admin(), uuid.New(), "   ")

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "GetByID")
}

func TestRejectClearsApprovalFields(t *testing.T) {
	mockRepo := new(MockRepository)
	notifier := &recordingNotifier{}
	service := newTestService(mockRepo, new(MockTagStore), notifier)

	ctx := context.Background()
	approvedBy := uuid.New()
	approvedAt := time.Now()
	project := &Project{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Status:     StatusApproved,
		ApprovedBy: &approvedBy,
		ApprovedAt: &approvedAt,
		IsFeatured: true,
	}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)
	mockRepo.On("Update", ctx, project).Return(nil)

	result, err := service.Reject(ctx, admin(), project.ID, "broken demo link")

	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Equal(t, "broken demo link", *result.RejectionReason)
	assert.Nil(t, result.ApprovedBy)
	assert.Nil(t, result.ApprovedAt)
	assert.False(t, result.IsFeatured)
	assert.Equal(t, []string{"broken demo link"}, notifier.reasons)
	mockRepo.AssertExpectations(t)
}

func TestResubmitRejectedProject(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()
	reason := "fix the screenshots"
	project := &Project{
		ID:              uuid.New(),
		OwnerID:         owner.UserID,
		Status:          StatusRejected,
		RejectionReason: &reason,
	}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)
	mockRepo.On("Update", ctx, project).Return(nil)

	result, err := service.Resubmit(ctx, owner, project.ID)

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, result.Status)
	assert.Nil(t, result.RejectionReason)
	mockRepo.AssertExpectations(t)
}

func TestResubmitPendingProjectFails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()
	project := &Project{ID: uuid.New(), OwnerID: owner.UserID, Status: StatusPending}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.Resubmit(ctx, owner, project.ID)

	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestResubmitByStrangerReportsNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	project := &Project{ID: uuid.New(), OwnerID: uuid.New(), Status: StatusRejected}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.Resubmit(ctx, member(), project.ID)

	// A stranger must not learn the project exists.
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestResubmitByAdminIsDenied(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	project := &Project{ID: uuid.New(), OwnerID: uuid.New(), Status: StatusRejected}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.Resubmit(ctx, admin(), project.ID)

	// Admins can already see the project, so the denial is explicit.
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
}

func TestUpdateRejectedProjectResubmits(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()
	reason := "typo in title"
	project := &Project{
		ID:              uuid.New(),
		OwnerID:         owner.UserID,
		Status:          StatusRejected,
		RejectionReason: &reason,
	}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)
	mockRepo.On("Update", ctx, project).Return(nil)
	mockRepo.On("ReplaceTags", ctx, project, []tags.Tag{}).Return(nil)

	result, err := service.UpdateContent(ctx, owner, project.ID, Input{
		Title:      "Fixed Title",
		WebsiteURL: "https://example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, result.Status)
	assert.Nil(t, result.RejectionReason)
	mockRepo.AssertExpectations(t)
}

func TestUpdateApprovedProjectFails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()
	project := &Project{ID: uuid.New(), OwnerID: owner.UserID, Status: StatusApproved}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.UpdateContent(ctx, owner, project.ID, Input{WebsiteURL: "https://example.com"})

	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestGetHidesPendingFromStrangers(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	project := &Project{ID: uuid.New(), OwnerID: uuid.New(), Status: StatusPending}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.Get(ctx, member(), project.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = service.Get(ctx, auth.Identity{}, project.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetShowsOwnPendingProject(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	owner := member()
	project := &Project{ID: uuid.New(), OwnerID: owner.UserID, Status: StatusPending}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	result, err := service.Get(ctx, owner, project.ID)

	assert.NoError(t, err)
	assert.Equal(t, project.ID, result.ID)
}

func TestToggleFeaturedOnlyApproved(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTagStore), nil)

	ctx := context.Background()
	project := &Project{ID: uuid.New(), OwnerID: uuid.New(), Status: StatusPending}

	mockRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := service.ToggleFeatured(ctx, admin(), project.ID)

	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}
