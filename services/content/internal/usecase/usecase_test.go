package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"damai-site/pkg/database"
	"damai-site/pkg/logger"
	"damai-site/pkg/queue"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	args := m.Called(key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type MockOrphanPublisher struct {
	mock.Mock
}

func (m *MockOrphanPublisher) PublishOrphanedMedia(ctx context.Context, event queue.OrphanedMedia) error {
	args := m.Called(event)
	return args.Error(0)
}

var (
	_ MediaStore      = (*MockMediaStore)(nil)
	_ OrphanPublisher = (*MockOrphanPublisher)(nil)
)

type fixture struct {
	db      *gorm.DB
	updates persistent.UpdateRepository
	gallery persistent.GalleryRepository
	admins  persistent.AdminRepository
	store   *MockMediaStore
	orphans *MockOrphanPublisher
	adminID string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, persistent.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:      db,
		updates: persistent.NewUpdateRepository(db),
		gallery: persistent.NewGalleryRepository(db),
		admins:  persistent.NewAdminRepository(db),
		store:   new(MockMediaStore),
		orphans: new(MockOrphanPublisher),
	}

	admin := &entity.Admin{Username: "warden", PasswordHash: "unused"}
	require.NoError(t, f.admins.Create(context.Background(), admin))
	f.adminID = admin.ID
	return f
}

func jpeg(name string) *MediaUpload {
	return &MediaUpload{Filename: name, ContentType: "image/jpeg", Body: strings.NewReader("jpeg-bytes")}
}

func keyWithPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, prefix) })
}

func testLogger() *logger.Logger { return logger.NewNop() }
