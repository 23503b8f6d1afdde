package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"devshowcase/showcase-backend/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]Notification), args.Error(1)
}

func (m *MockRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestProjectModeratedApproval(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	ownerID := uuid.New()
	projectID := uuid.New()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *Notification) bool {
		return n.UserID == ownerID && n.Type == TypeProjectApproved && *n.ProjectID == projectID
	})).Return(nil)

	service.ProjectModerated(ctx, ownerID, projectID, "My Project", true, "")

	mockRepo.AssertExpectations(t)
}

func TestProjectModeratedRejectionIncludesReason(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	ownerID := uuid.New()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *Notification) bool {
		return n.Type == TypeProjectRejected && n.UserID == ownerID &&
			strings.Contains(n.Body, "broken link")
	})).Return(nil)

	service.ProjectModerated(ctx, ownerID, uuid.New(), "My Project", false, "broken link")

	mockRepo.AssertExpectations(t)
}

func TestProjectModeratedSwallowsStorageErrors(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*notifications.Notification")).
		Return(errors.New("db down"))

	// Must not panic or propagate; moderation already succeeded.
	service.ProjectModerated(ctx, uuid.New(), uuid.New(), "My Project", true, "")

	mockRepo.AssertExpectations(t)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	mockRepo.On("MarkRead", ctx, userID, notificationID).Return(false, nil)

	err := service.MarkRead(ctx, userID, notificationID)

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListForUserIncludesUnreadCount(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("ListForUser", ctx, userID, 20, 0).Return([]Notification{{UserID: userID}}, nil)
	mockRepo.On("UnreadCount", ctx, userID).Return(int64(1), nil)

	rows, unread, err := service.ListForUser(ctx, userID, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(1), unread)
}
