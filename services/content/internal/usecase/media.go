package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"damai-site/pkg/logger"
	"damai-site/pkg/queue"
	"damai-site/pkg/s3"
	"damai-site/services/content/internal/entity"
)

// MediaStore is the object store holding uploaded binaries. *s3.Client
// satisfies it.
type MediaStore interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// OrphanPublisher receives objects whose cleanup failed. *queue.Client
// satisfies it; nil disables reporting.
type OrphanPublisher interface {
	PublishOrphanedMedia(ctx context.Context, event queue.OrphanedMedia) error
}

// MediaUpload is a binary received from an admin form.
type MediaUpload struct {
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

func (m *MediaUpload) isImage() bool { return strings.HasPrefix(m.ContentType, "image/") }

func (m *MediaUpload) isVideo() bool { return strings.HasPrefix(m.ContentType, "video/") }

type mediaManager struct {
	store   MediaStore
	orphans OrphanPublisher
	logger  *logger.Logger
	now     func() time.Time
}

func newMediaManager(store MediaStore, orphans OrphanPublisher, log *logger.Logger) *mediaManager {
	return &mediaManager{store: store, orphans: orphans, logger: log, now: time.Now}
}

// upload stores the binary under a fresh key and returns the key and its
// public URL. Any store failure is reported as ErrUpload.
func (m *mediaManager) upload(ctx context.Context, category string, media *MediaUpload) (string, string, error) {
	key := s3.NewObjectKey(category, media.Filename, media.ContentType, m.now())
	url, err := m.store.Upload(ctx, key, media.Body, media.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", entity.ErrUpload, err)
	}
	return key, url, nil
}

// discard deletes key best-effort. A failure is logged and published as an
// orphan event; it is never returned to the caller and never retried.
func (m *mediaManager) discard(ctx context.Context, category, recordID, key, reason string) {
	if key == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)

	err := m.store.Delete(ctx, key)
	if err == nil {
		return
	}
	m.logger.Warn("Orphaned media %s (%s %s, %s): %v", key, category, recordID, reason, err)

	if m.orphans == nil {
		return
	}
	event := queue.OrphanedMedia{
		Key:        key,
		Category:   category,
		RecordID:   recordID,
		Reason:     fmt.Sprintf("%s: %v", reason, err),
		OccurredAt: m.now().UTC(),
	}
	if err := m.orphans.PublishOrphanedMedia(ctx, event); err != nil {
		m.logger.Error("Failed to publish orphaned media event for %s: %v", key, err)
	}
}
