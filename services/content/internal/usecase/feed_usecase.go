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

const updatesCacheKey = "snapshot:updates"

// PostInput carries an admin's edit. Media replaces any existing media;
// RemoveMedia drops it without a replacement.
type PostInput struct {
	Content     string
	MediaType   entity.MediaType
	Media       *MediaUpload
	RemoveMedia bool
}

type FeedUseCase interface {
	CreatePost(ctx context.Context, adminID string, input PostInput) (*entity.Update, error)
	ListPosts(ctx context.Context) ([]*entity.Update, error)
	GetPost(ctx context.Context, id string) (*entity.Update, error)
	UpdatePost(ctx context.Context, id string, input PostInput) (*entity.Update, error)
	DeletePost(ctx context.Context, id string) error
}

type feedUseCase struct {
	updateRepo persistent.UpdateRepository
	adminRepo  persistent.AdminRepository
	media      *mediaManager
	snapshot   *cache.Snapshot
	logger     *logger.Logger
}

func NewFeedUseCase(
	updateRepo persistent.UpdateRepository,
	adminRepo persistent.AdminRepository,
	store MediaStore,
	orphans OrphanPublisher,
	snapshot *cache.Snapshot,
	logger *logger.Logger,
) FeedUseCase {
	return &feedUseCase{
		updateRepo: updateRepo,
		adminRepo:  adminRepo,
		media:      newMediaManager(store, orphans, logger),
		snapshot:   snapshot,
		logger:     logger,
	}
}

func (uc *feedUseCase) CreatePost(ctx context.Context, adminID string, input PostInput) (*entity.Update, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.Media == nil {
		return nil, fmt.Errorf("%w: post needs content or media", entity.ErrValidation)
	}
	mediaType, err := resolveMediaType(input)
	if err != nil {
		return nil, err
	}

	exists, err := uc.adminRepo.Exists(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown admin", entity.ErrAuth)
	}

	update := &entity.Update{AdminID: adminID, Content: content}
	if input.Media != nil {
		key, url, err := uc.media.upload(ctx, s3.CategoryUpdates, input.Media)
		if err != nil {
			return nil, err
		}
		update.MediaPath, update.MediaURL, update.MediaType = key, url, mediaType
	}

	if err := uc.updateRepo.Create(ctx, update); err != nil {
		uc.media.discard(ctx, s3.CategoryUpdates, "", update.MediaPath, "post insert failed")
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.invalidate(ctx)
	return update, nil
}

// ListPosts returns the feed newest first. Cached entries do not carry
// storage keys; use GetPost when the key matters.
func (uc *feedUseCase) ListPosts(ctx context.Context) ([]*entity.Update, error) {
	var cached []*entity.Update
	hit, err := uc.snapshot.Get(ctx, updatesCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("Failed to read feed snapshot: %v", err)
	}
	if hit {
		return cached, nil
	}

	gen, genErr := uc.snapshot.Generation(ctx, updatesCacheKey)
	if genErr != nil {
		uc.logger.Warn("Failed to read feed snapshot generation: %v", genErr)
	}

	updates, err := uc.updateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if _, err := uc.snapshot.Store(ctx, updatesCacheKey, gen, updates); err != nil {
			uc.logger.Warn("Failed to store feed snapshot: %v", err)
		}
	}
	return updates, nil
}

func (uc *feedUseCase) GetPost(ctx context.Context, id string) (*entity.Update, error) {
	return uc.updateRepo.GetByID(ctx, id)
}

func (uc *feedUseCase) UpdatePost(ctx context.Context, id string, input PostInput) (*entity.Update, error) {
	existing, err := uc.updateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	keepsMedia := existing.HasMedia() && !input.RemoveMedia
	if content == "" && input.Media == nil && !keepsMedia {
		return nil, fmt.Errorf("%w: post needs content or media", entity.ErrValidation)
	}
	mediaType, err := resolveMediaType(input)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Content = content
	oldPath := existing.MediaPath
	replaced := false

	switch {
	case input.Media != nil:
		key, url, err := uc.media.upload(ctx, s3.CategoryUpdates, input.Media)
		if err != nil {
			return nil, err
		}
		updated.MediaPath, updated.MediaURL, updated.MediaType = key, url, mediaType
		replaced = true
	case input.RemoveMedia:
		updated.MediaPath, updated.MediaURL, updated.MediaType = "", "", ""
		replaced = true
	}

	if err := uc.updateRepo.Update(ctx, &updated); err != nil {
		if input.Media != nil {
			uc.media.discard(ctx, s3.CategoryUpdates, id, updated.MediaPath, "post update failed")
		}
		return nil, err
	}

	if replaced && oldPath != "" {
		uc.media.discard(ctx, s3.CategoryUpdates, id, oldPath, "media replaced")
	}

	uc.invalidate(ctx)
	return &updated, nil
}

func (uc *feedUseCase) DeletePost(ctx context.Context, id string) error {
	existing, err := uc.updateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.updateRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.media.discard(ctx, s3.CategoryUpdates, id, existing.MediaPath, "post deleted")
	uc.invalidate(ctx)
	return nil
}

func (uc *feedUseCase) invalidate(ctx context.Context) {
	if err := uc.snapshot.Invalidate(ctx, updatesCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate feed snapshot: %v", err)
	}
}

// resolveMediaType validates an explicit type or derives one from the upload.
func resolveMediaType(input PostInput) (entity.MediaType, error) {
	if input.Media == nil {
		if input.MediaType != "" {
			return "", fmt.Errorf("%w: media_type given without media", entity.ErrValidation)
		}
		return "", nil
	}

	if input.MediaType != "" {
		if !input.MediaType.Valid() {
			return "", fmt.Errorf("%w: media_type must be image or video", entity.ErrValidation)
		}
		return input.MediaType, nil
	}

	switch {
	case input.Media.isImage():
		return entity.MediaTypeImage, nil
	case input.Media.isVideo():
		return entity.MediaTypeVideo, nil
	}
	return "", fmt.Errorf("%w: unsupported content type %q", entity.ErrValidation, input.Media.ContentType)
}

