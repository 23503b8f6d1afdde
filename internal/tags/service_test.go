package tags

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, tag *Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tag), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]Tag), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, tag *Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Tag), args.Error(1)
}

func (m *MockRepository) ExistsByName(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ExistsBySlug(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}

func adminCaller() auth.Identity {
	return auth.Identity{UserID: uuid.New(), IsAdmin: true}
}

func TestCreateTag(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ExistsByName", ctx, "Go", uuid.Nil).Return(false, nil)
	mockRepo.On("ExistsBySlug", ctx, "go", uuid.Nil).Return(false, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*tags.Tag")).Return(nil)

	tag, err := service.Create(ctx, adminCaller(), TagInput{Name: "Go", Slug: "go", Color: "#00ADD8"})

	assert.NoError(t, err)
	assert.Equal(t, "Go", tag.Name)
	assert.Equal(t, "go", tag.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCreateTagRequiresAdmin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	_, err := service.Create(context.Background(), auth.Identity{UserID: uuid.New()}, TagInput{Name: "Go", Slug: "go"})

	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateTagDuplicateName(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ExistsByName", ctx, "Go", uuid.Nil).Return(true, nil)

	_, err := service.Create(ctx, adminCaller(), TagInput{Name: "Go", Slug: "go"})

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestUpdateTagExcludesSelfFromDuplicateCheck(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	existing := &Tag{ID: uuid.New(), Name: "Go", Slug: "go"}

	mockRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("ExistsByName", ctx, "Golang", existing.ID).Return(false, nil)
	mockRepo.On("ExistsBySlug", ctx, "golang", existing.ID).Return(false, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	tag, err := service.Update(ctx, adminCaller(), existing.ID, TagInput{Name: "Golang", Slug: "golang"})

	assert.NoError(t, err)
	assert.Equal(t, "Golang", tag.Name)
	mockRepo.AssertExpectations(t)
}

func TestDeleteMissingTag(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	err := service.Delete(ctx, adminCaller(), id)

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Delete")
}
