package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

// JobExecutionRepo stores scheduler run history.
type JobExecutionRepo struct {
	pool *pgxpool.Pool
}

func NewJobExecutionRepo(pool *pgxpool.Pool) *JobExecutionRepo {
	return &JobExecutionRepo{pool: pool}
}

func (r *JobExecutionRepo) Record(ctx context.Context, e *models.JobExecution) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO job_executions (job_name, started_at, finished_at, status, error)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.JobName, e.StartedAt, e.FinishedAt, e.Status, e.Error).Scan(&e.ID)
}

// DeleteOlderThan prunes execution history past the retention window.
// Returns the number of rows removed.
func (r *JobExecutionRepo) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM job_executions WHERE finished_at < now() - $1::interval
	`, retention.String())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
