package http

import (
	"context"

	"damai-site/pkg/jwt"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockFeedUseCase is a mock implementation of FeedUseCase
type MockFeedUseCase struct {
	mock.Mock
}

func (m *MockFeedUseCase) CreatePost(ctx context.Context, adminID string, input usecase.PostInput) (*entity.Update, error) {
	args := m.Called(adminID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Update), args.Error(1)
}

func (m *MockFeedUseCase) ListPosts(ctx context.Context) ([]*entity.Update, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Update), args.Error(1)
}

func (m *MockFeedUseCase) GetPost(ctx context.Context, id string) (*entity.Update, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Update), args.Error(1)
}

func (m *MockFeedUseCase) UpdatePost(ctx context.Context, id string, input usecase.PostInput) (*entity.Update, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Update), args.Error(1)
}

func (m *MockFeedUseCase) DeletePost(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockGalleryUseCase is a mock implementation of GalleryUseCase
type MockGalleryUseCase struct {
	mock.Mock
}

func (m *MockGalleryUseCase) ListImages(ctx context.Context) ([]*entity.GalleryImage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.GalleryImage), args.Error(1)
}

func (m *MockGalleryUseCase) CreateImage(ctx context.Context, adminID, caption string, image *usecase.MediaUpload) (*entity.GalleryImage, error) {
	args := m.Called(adminID, caption, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GalleryImage), args.Error(1)
}

func (m *MockGalleryUseCase) UpdateCaption(ctx context.Context, id, caption string) (*entity.GalleryImage, error) {
	args := m.Called(id, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GalleryImage), args.Error(1)
}

func (m *MockGalleryUseCase) DeleteImage(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAdminUseCase is a mock implementation of AdminUseCase
type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) CreateAdmin(ctx context.Context, username, password string) (*entity.Admin, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}

func (m *MockAdminUseCase) Login(ctx context.Context, username, password string) (*entity.Admin, *jwt.Session, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Admin), args.Get(1).(*jwt.Session), args.Error(2)
}

func (m *MockAdminUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	args := m.Called(claims)
	return args.Error(0)
}

func (m *MockAdminUseCase) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	args := m.Called(adminID, currentPassword, newPassword)
	return args.Error(0)
}

var (
	_ usecase.FeedUseCase    = (*MockFeedUseCase)(nil)
	_ usecase.GalleryUseCase = (*MockGalleryUseCase)(nil)
	_ usecase.AdminUseCase   = (*MockAdminUseCase)(nil)
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	return gin.New()
}

func asAdmin(adminID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("admin_id", adminID)
		handler(c)
	}
}
