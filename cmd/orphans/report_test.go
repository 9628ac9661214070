package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"damai-site/pkg/logger"
	"damai-site/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func event(key string) queue.OrphanedMedia {
	return queue.OrphanedMedia{
		Key:        key,
		Category:   "gallery",
		RecordID:   "img-1",
		Reason:     "gallery image deleted: timeout",
		OccurredAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) reportLine {
	t.Helper()
	var line reportLine
	require.NoError(t, json.NewDecoder(buf).Decode(&line))
	return line
}

func TestReporter_ReportOnly(t *testing.T) {
	var buf bytes.Buffer
	r := newReporter(&buf, nil, false, logger.NewNop())

	require.NoError(t, r.handle(context.Background(), event("gallery/1-abc.jpg")))

	line := decodeLine(t, &buf)
	assert.Equal(t, "gallery/1-abc.jpg", line.Key)
	assert.Equal(t, "reported", line.Action)
	assert.Equal(t, 1, r.seen)
}

func TestReporter_Purge(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeDeleter{}
	r := newReporter(&buf, store, true, logger.NewNop())

	require.NoError(t, r.handle(context.Background(), event("gallery/1-abc.jpg")))

	assert.Equal(t, []string{"gallery/1-abc.jpg"}, store.deleted)
	assert.Equal(t, "purged", decodeLine(t, &buf).Action)
}

func TestReporter_PurgeFailureIsReportedNotRequeued(t *testing.T) {
	var buf bytes.Buffer
	r := newReporter(&buf, &fakeDeleter{err: errors.New("access denied")}, true, logger.NewNop())

	require.NoError(t, r.handle(context.Background(), event("updates/2-def.mp4")))

	line := decodeLine(t, &buf)
	assert.Equal(t, "purge_failed", line.Action)
	assert.Equal(t, "access denied", line.Error)
}
