package usecase

import (
	"context"
	"fmt"
	"strings"

	"damai-site/pkg/cache"
	"damai-site/pkg/logger"
	"damai-site/pkg/s3"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/repo/persistent"
)

const galleryCacheKey = "snapshot:gallery"

type GalleryUseCase interface {
	ListImages(ctx context.Context) ([]*entity.GalleryImage, error)
	CreateImage(ctx context.Context, adminID, caption string, image *MediaUpload) (*entity.GalleryImage, error)
	UpdateCaption(ctx context.Context, id, caption string) (*entity.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

type galleryUseCase struct {
	galleryRepo persistent.GalleryRepository
	adminRepo   persistent.AdminRepository
	media       *mediaManager
	snapshot    *cache.Snapshot
	logger      *logger.Logger
}

func NewGalleryUseCase(
	galleryRepo persistent.GalleryRepository,
	adminRepo persistent.AdminRepository,
	store MediaStore,
	orphans OrphanPublisher,
	snapshot *cache.Snapshot,
	logger *logger.Logger,
) GalleryUseCase {
	return &galleryUseCase{
		galleryRepo: galleryRepo,
		adminRepo:   adminRepo,
		media:       newMediaManager(store, orphans, logger),
		snapshot:    snapshot,
		logger:      logger,
	}
}

func (uc *galleryUseCase) ListImages(ctx context.Context) ([]*entity.GalleryImage, error) {
	var cached []*entity.GalleryImage
	hit, err := uc.snapshot.Get(ctx, galleryCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("Failed to read gallery snapshot: %v", err)
	}
	if hit {
		return cached, nil
	}

	gen, genErr := uc.snapshot.Generation(ctx, galleryCacheKey)
	if genErr != nil {
		uc.logger.Warn("Failed to read gallery snapshot generation: %v", genErr)
	}

	images, err := uc.galleryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if _, err := uc.snapshot.Store(ctx, galleryCacheKey, gen, images); err != nil {
			uc.logger.Warn("Failed to store gallery snapshot: %v", err)
		}
	}
	return images, nil
}

func (uc *galleryUseCase) CreateImage(ctx context.Context, adminID, caption string, image *MediaUpload) (*entity.GalleryImage, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image file is required", entity.ErrValidation)
	}
	if !image.isImage() {
		return nil, fmt.Errorf("%w: gallery accepts images only, got %q", entity.ErrValidation, image.ContentType)
	}

	exists, err := uc.adminRepo.Exists(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown admin", entity.ErrAuth)
	}

	key, url, err := uc.media.upload(ctx, s3.CategoryGallery, image)
	if err != nil {
		return nil, err
	}

	galleryImage := &entity.GalleryImage{
		ImageURL:  url,
		ImagePath: key,
		Caption:   strings.TrimSpace(caption),
		CreatedBy: adminID,
	}
	if err := uc.galleryRepo.Create(ctx, galleryImage); err != nil {
		uc.media.discard(ctx, s3.CategoryGallery, "", key, "gallery insert failed")
		return nil, fmt.Errorf("failed to create gallery image: %w", err)
	}

	uc.invalidate(ctx)
	return galleryImage, nil
}

func (uc *galleryUseCase) UpdateCaption(ctx context.Context, id, caption string) (*entity.GalleryImage, error) {
	image, err := uc.galleryRepo.UpdateCaption(ctx, id, strings.TrimSpace(caption))
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return image, nil
}

func (uc *galleryUseCase) DeleteImage(ctx context.Context, id string) error {
	image, err := uc.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.galleryRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.media.discard(ctx, s3.CategoryGallery, id, image.ImagePath, "gallery image deleted")
	uc.invalidate(ctx)
	return nil
}

func (uc *galleryUseCase) invalidate(ctx context.Context) {
	if err := uc.snapshot.Invalidate(ctx, galleryCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate gallery snapshot: %v", err)
	}
}
