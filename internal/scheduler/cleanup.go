package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CleanupStore prunes old job execution history.
type CleanupStore interface {
	DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

// CleanupJob deletes execution-history records older than the retention
// window. Registered weekly.
type CleanupJob struct {
	store     CleanupStore
	retention time.Duration
	log       *zap.Logger
}

func NewCleanupJob(store CleanupStore, retention time.Duration, log *zap.Logger) *CleanupJob {
	return &CleanupJob{store: store, retention: retention, log: log}
}

func (j *CleanupJob) Run(ctx context.Context) error {
	n, err := j.store.DeleteOlderThan(ctx, j.retention)
	if err != nil {
		return err
	}
	j.log.Info("old job executions deleted",
		zap.Int64("deleted", n),
		zap.Duration("retention", j.retention),
	)
	return nil
}
