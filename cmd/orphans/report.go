package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"damai-site/pkg/logger"
	"damai-site/pkg/queue"
)

type deleter interface {
	Delete(ctx context.Context, key string) error
}

// reportLine is one JSON line per orphaned object on stdout.
type reportLine struct {
	Key        string    `json:"key"`
	Category   string    `json:"category"`
	RecordID   string    `json:"record_id,omitempty"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
	Action     string    `json:"action"`
	Error      string    `json:"error,omitempty"`
}

type reporter struct {
	out    *json.Encoder
	store  deleter
	purge  bool
	logger *logger.Logger
	seen   int
}

func newReporter(out io.Writer, store deleter, purge bool, log *logger.Logger) *reporter {
	return &reporter{out: json.NewEncoder(out), store: store, purge: purge, logger: log}
}

// handle never fails the message: a purge that fails is reported and left
// for the operator, since requeueing would spin on the same object.
func (r *reporter) handle(ctx context.Context, event queue.OrphanedMedia) error {
	r.seen++
	line := reportLine{
		Key:        event.Key,
		Category:   event.Category,
		RecordID:   event.RecordID,
		Reason:     event.Reason,
		OccurredAt: event.OccurredAt,
		Action:     "reported",
	}

	if r.purge {
		if err := r.store.Delete(ctx, event.Key); err != nil {
			r.logger.Warn("Purge failed for %s: %v", event.Key, err)
			line.Action = "purge_failed"
			line.Error = err.Error()
		} else {
			line.Action = "purged"
		}
	}

	return r.out.Encode(line)
}
