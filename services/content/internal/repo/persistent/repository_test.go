package persistent

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"damai-site/pkg/database"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUpdateRepository_CreateAndListNewestFirst(t *testing.T) {
	repo := NewUpdateRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		u := &entity.Update{
			AdminID:   "admin-1",
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
	}

	updates, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 3)
	assert.Equal(t, "post 2", updates[0].Content)
	assert.Equal(t, "post 0", updates[2].Content)
	for i := 1; i < len(updates); i++ {
		assert.False(t, updates[i].CreatedAt.After(updates[i-1].CreatedAt))
	}
}

func TestUpdateRepository_MediaRoundTrip(t *testing.T) {
	repo := NewUpdateRepository(setupTestDB(t))
	ctx := context.Background()

	u := &entity.Update{
		AdminID:   "admin-1",
		MediaURL:  "https://cdn.example.org/images/updates/1-abc.jpg",
		MediaPath: "updates/1-abc.jpg",
		MediaType: entity.MediaTypeImage,
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "updates/1-abc.jpg", got.MediaPath)
	assert.Equal(t, entity.MediaTypeImage, got.MediaType)
	assert.True(t, got.HasMedia())

	got.Content = "now with words"
	got.MediaURL, got.MediaPath, got.MediaType = "", "", ""
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "now with words", got.Content)
	assert.False(t, got.HasMedia())
	assert.Empty(t, got.MediaPath)
}

func TestUpdateRepository_NotFound(t *testing.T) {
	repo := NewUpdateRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	err = repo.Update(ctx, &entity.Update{ID: "missing", Content: "x"})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdateRepository_DeleteIsNotIdempotent(t *testing.T) {
	repo := NewUpdateRepository(setupTestDB(t))
	ctx := context.Background()

	u := &entity.Update{AdminID: "admin-1", Content: "bye"}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), entity.ErrNotFound)
}

func TestGalleryRepository_SequentialOrders(t *testing.T) {
	repo := NewGalleryRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		img := &entity.GalleryImage{
			ImageURL:  fmt.Sprintf("https://cdn.example.org/gallery/%d.jpg", i),
			ImagePath: fmt.Sprintf("gallery/%d.jpg", i),
			CreatedBy: "admin-1",
		}
		require.NoError(t, repo.Create(ctx, img))
		assert.Equal(t, i+1, img.DisplayOrder)
	}

	images, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 4)
	for i := 1; i < len(images); i++ {
		assert.Greater(t, images[i].DisplayOrder, images[i-1].DisplayOrder)
	}
}

func TestGalleryRepository_OrderContinuesAfterDelete(t *testing.T) {
	repo := NewGalleryRepository(setupTestDB(t))
	ctx := context.Background()

	first := &entity.GalleryImage{ImageURL: "u1", ImagePath: "gallery/1.jpg", CreatedBy: "admin-1"}
	second := &entity.GalleryImage{ImageURL: "u2", ImagePath: "gallery/2.jpg", CreatedBy: "admin-1"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Delete(ctx, first.ID))

	third := &entity.GalleryImage{ImageURL: "u3", ImagePath: "gallery/3.jpg", CreatedBy: "admin-1"}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 3, third.DisplayOrder)
}

func TestGalleryRepository_ConcurrentCreateDistinctOrders(t *testing.T) {
	repo := NewGalleryRepository(setupTestDB(t))
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, &entity.GalleryImage{
				ImageURL:  fmt.Sprintf("u%d", i),
				ImagePath: fmt.Sprintf("gallery/%d.jpg", i),
				CreatedBy: "admin-1",
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	images, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, n)

	seen := map[int]bool{}
	for _, img := range images {
		assert.False(t, seen[img.DisplayOrder], "duplicate display_order %d", img.DisplayOrder)
		seen[img.DisplayOrder] = true
	}
}

func TestGalleryRepository_UniqueOrderIsEnforced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&model.GalleryImageModel{
		ImageURL: "u1", ImagePath: "gallery/1.jpg", DisplayOrder: 1, CreatedBy: "admin-1",
	}).Error)
	err := db.WithContext(ctx).Create(&model.GalleryImageModel{
		ImageURL: "u2", ImagePath: "gallery/2.jpg", DisplayOrder: 1, CreatedBy: "admin-1",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// staleOrder makes the first staleAttempts inserts of imageURL reuse
// display_order 1, as a writer would after reading MAX before a competing
// insert committed. It returns the number of insert attempts seen.
func staleOrder(t *testing.T, db *gorm.DB, imageURL string, staleAttempts int) *int {
	t.Helper()
	attempts := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:stale_display_order", func(tx *gorm.DB) {
		img, ok := tx.Statement.Dest.(*model.GalleryImageModel)
		if !ok || img.ImageURL != imageURL {
			return
		}
		attempts++
		if attempts <= staleAttempts {
			img.DisplayOrder = 1
		}
	})
	require.NoError(t, err)
	return &attempts
}

func TestGalleryRepository_RetriesAfterOrderCollision(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGalleryRepository(db)
	ctx := context.Background()

	first := &entity.GalleryImage{ImageURL: "u1", ImagePath: "gallery/1.jpg", CreatedBy: "admin-1"}
	require.NoError(t, repo.Create(ctx, first))
	attempts := staleOrder(t, db, "u2", 2)

	second := &entity.GalleryImage{ImageURL: "u2", ImagePath: "gallery/2.jpg", CreatedBy: "admin-1"}
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, 3, *attempts)
	assert.Equal(t, 2, second.DisplayOrder)

	images, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, []string{first.ID, second.ID}, []string{images[0].ID, images[1].ID})
}

func TestGalleryRepository_OrderContentionAfterMaxAttempts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGalleryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.GalleryImage{ImageURL: "u1", ImagePath: "gallery/1.jpg", CreatedBy: "admin-1"}))
	attempts := staleOrder(t, db, "u2", maxOrderAttempts)

	err := repo.Create(ctx, &entity.GalleryImage{ImageURL: "u2", ImagePath: "gallery/2.jpg", CreatedBy: "admin-1"})
	assert.ErrorIs(t, err, ErrOrderContention)
	assert.Equal(t, maxOrderAttempts, *attempts)

	images, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestGalleryRepository_UpdateCaption(t *testing.T) {
	repo := NewGalleryRepository(setupTestDB(t))
	ctx := context.Background()

	img := &entity.GalleryImage{ImageURL: "u1", ImagePath: "gallery/1.jpg", Caption: "Old", CreatedBy: "admin-1"}
	require.NoError(t, repo.Create(ctx, img))

	updated, err := repo.UpdateCaption(ctx, img.ID, "Hari Raya lunch")
	require.NoError(t, err)
	assert.Equal(t, "Hari Raya lunch", updated.Caption)
	assert.Equal(t, img.DisplayOrder, updated.DisplayOrder)

	cleared, err := repo.UpdateCaption(ctx, img.ID, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.Caption)

	_, err = repo.UpdateCaption(ctx, "missing", "x")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdminRepository(t *testing.T) {
	repo := NewAdminRepository(setupTestDB(t))
	ctx := context.Background()

	admin := &entity.Admin{Username: "warden", PasswordHash: "hash-1"}
	require.NoError(t, repo.Create(ctx, admin))

	exists, err := repo.Exists(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := repo.GetByUsername(ctx, "warden")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	require.NoError(t, repo.UpdatePasswordHash(ctx, admin.ID, "hash-2"))
	got, err = repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
