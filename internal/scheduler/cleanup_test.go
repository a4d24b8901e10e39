package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeCleanupStore struct {
	gotRetention time.Duration
	deleted      int64
	err          error
}

func (f *fakeCleanupStore) DeleteOlderThan(_ context.Context, retention time.Duration) (int64, error) {
	f.gotRetention = retention
	return f.deleted, f.err
}

func TestCleanupJobRun(t *testing.T) {
	store := &fakeCleanupStore{deleted: 3}
	job := NewCleanupJob(store, 7*24*time.Hour, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.gotRetention != 7*24*time.Hour {
		t.Errorf("retention = %v, want 168h", store.gotRetention)
	}
}

func TestCleanupJobPropagatesErrors(t *testing.T) {
	store := &fakeCleanupStore{err: errors.New("db down")}
	job := NewCleanupJob(store, 7*24*time.Hour, zap.NewNop())

	if err := job.Run(context.Background()); err == nil {
		t.Error("expected storage error to surface")
	}
}
