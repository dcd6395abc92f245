package service

import (
	"context"
	"errors"
	"testing"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type fakeOutbox struct {
	pending []domain.SyncEntry
	applied []int64
	failed  []int64
	failOn  map[int64]bool
}

func (f *fakeOutbox) PendingBatch(ctx context.Context, limit, maxAttempts int) ([]domain.SyncEntry, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) Apply(ctx context.Context, e domain.SyncEntry) error {
	if f.failOn[e.ID] {
		return errors.New("apply failed")
	}
	f.applied = append(f.applied, e.ID)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id int64) error {
	f.failed = append(f.failed, id)
	return nil
}

func TestDrainAppliesAllPending(t *testing.T) {
	store := &fakeOutbox{pending: []domain.SyncEntry{{ID: 1}, {ID: 2}, {ID: 3}}}
	relay := NewOutboxRelay(store)

	if err := relay.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(store.applied) != 3 {
		t.Errorf("applied = %d, want 3", len(store.applied))
	}
	if len(store.failed) != 0 {
		t.Errorf("failed = %d, want 0", len(store.failed))
	}
}

func TestDrainRecordsFailuresAndContinues(t *testing.T) {
	store := &fakeOutbox{
		pending: []domain.SyncEntry{{ID: 1}, {ID: 2}, {ID: 3}},
		failOn:  map[int64]bool{2: true},
	}
	relay := NewOutboxRelay(store)

	if err := relay.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(store.applied) != 2 {
		t.Errorf("applied = %d, want 2 (failure must not stop the batch)", len(store.applied))
	}
	if len(store.failed) != 1 || store.failed[0] != 2 {
		t.Errorf("failed = %v, want [2]", store.failed)
	}
}
