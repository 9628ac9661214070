package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"damai-site/pkg/queue"
	"damai-site/services/content/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGallery(f *fixture) GalleryUseCase {
	return NewGalleryUseCase(f.gallery, f.admins, f.store, f.orphans, nil, testLogger())
}

func TestCreateImage_AssignsIncreasingOrder(t *testing.T) {
	f := setupFixture(t)
	uc := newGallery(f)
	ctx := context.Background()

	f.store.On("Upload", keyWithPrefix("gallery/"), "image/jpeg").Return("https://cdn/g.jpg", nil)

	for i := 1; i <= 3; i++ {
		img, err := uc.CreateImage(ctx, f.adminID, " Garden ", jpeg("g.jpg"))
		require.NoError(t, err)
		assert.Equal(t, i, img.DisplayOrder)
		assert.Equal(t, "Garden", img.Caption)
	}

	images, err := uc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, 1, images[0].DisplayOrder)
}

func TestCreateImage_Validation(t *testing.T) {
	f := setupFixture(t)
	uc := newGallery(f)
	ctx := context.Background()

	_, err := uc.CreateImage(ctx, f.adminID, "", nil)
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = uc.CreateImage(ctx, f.adminID, "", &MediaUpload{Filename: "a.mp4", ContentType: "video/mp4", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = uc.CreateImage(ctx, "stranger", "", jpeg("a.jpg"))
	assert.ErrorIs(t, err, entity.ErrAuth)

	f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateImage_UploadFailureWritesNoRow(t *testing.T) {
	f := setupFixture(t)
	uc := newGallery(f)
	ctx := context.Background()

	f.store.On("Upload", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	_, err := uc.CreateImage(ctx, f.adminID, "", jpeg("a.jpg"))
	assert.ErrorIs(t, err, entity.ErrUpload)

	images, err := f.gallery.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestUpdateCaption(t *testing.T) {
	f := setupFixture(t)
	uc := newGallery(f)
	ctx := context.Background()

	f.store.On("Upload", mock.Anything, mock.Anything).Return("https://cdn/g.jpg", nil)
	img, err := uc.CreateImage(ctx, f.adminID, "", jpeg("g.jpg"))
	require.NoError(t, err)

	updated, err := uc.UpdateCaption(ctx, img.ID, "Morning exercise")
	require.NoError(t, err)
	assert.Equal(t, "Morning exercise", updated.Caption)

	_, err = uc.UpdateCaption(ctx, "missing", "x")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDeleteImage_MediaDeleteFailurePublishesOrphan(t *testing.T) {
	f := setupFixture(t)
	uc := newGallery(f)
	ctx := context.Background()

	f.store.On("Upload", mock.Anything, mock.Anything).Return("https://cdn/g.jpg", nil)
	img, err := uc.CreateImage(ctx, f.adminID, "", jpeg("g.jpg"))
	require.NoError(t, err)

	f.store.On("Delete", img.ImagePath).Return(errors.New("timeout"))
	f.orphans.On("PublishOrphanedMedia", mock.MatchedBy(func(e queue.OrphanedMedia) bool {
		return e.Key == img.ImagePath && e.Category == "gallery" && strings.Contains(e.Reason, "timeout")
	})).Return(errors.New("broker down"))

	require.NoError(t, uc.DeleteImage(ctx, img.ID))

	images, err := f.gallery.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
	f.orphans.AssertExpectations(t)

	assert.ErrorIs(t, uc.DeleteImage(ctx, img.ID), entity.ErrNotFound)
}

func TestDeleteImage_WithoutPublisher(t *testing.T) {
	f := setupFixture(t)
	uc := NewGalleryUseCase(f.gallery, f.admins, f.store, nil, nil, testLogger())
	ctx := context.Background()

	f.store.On("Upload", mock.Anything, mock.Anything).Return("https://cdn/g.jpg", nil)
	img, err := uc.CreateImage(ctx, f.adminID, "", jpeg("g.jpg"))
	require.NoError(t, err)

	f.store.On("Delete", img.ImagePath).Return(errors.New("timeout"))
	assert.NoError(t, uc.DeleteImage(ctx, img.ID))
}
