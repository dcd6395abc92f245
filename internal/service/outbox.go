package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

type outboxStore interface {
	PendingBatch(ctx context.Context, limit, maxAttempts int) ([]domain.SyncEntry, error)
	Apply(ctx context.Context, e domain.SyncEntry) error
	MarkFailed(ctx context.Context, id int64) error
}

// OutboxRelay drains the sync outbox: every bridged investor message gets
// its pitch-room link and founder notification materialized here, retried
// until the attempt cap.
type OutboxRelay struct {
	store outboxStore
}

func NewOutboxRelay(store outboxStore) *OutboxRelay {
	return &OutboxRelay{store: store}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(config.OutboxInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				slog.Error("outbox drain failed", "error", err)
			}
		}
	}
}

// Drain applies one batch of pending entries.
func (r *OutboxRelay) Drain(ctx context.Context) error {
	entries, err := r.store.PendingBatch(ctx, config.OutboxBatchSize, config.OutboxMaxAttempts)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := r.store.Apply(ctx, e); err != nil {
			slog.Warn("outbox entry failed",
				"entry_id", e.ID, "attempts", e.Attempts, "error", err)
			if markErr := r.store.MarkFailed(ctx, e.ID); markErr != nil {
				slog.Error("outbox failure bookkeeping failed",
					"entry_id", e.ID, "error", markErr)
			}
		}
	}
	return nil
}
