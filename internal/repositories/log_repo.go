package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

// LogRepo records delivery attempts. The table is append-only: there are no
// update or delete operations on it.
type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

func (r *LogRepo) Append(ctx context.Context, l *models.DeliveryLog) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO delivery_logs (message_id, status, response)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`, l.MessageID, l.Status, l.Response).Scan(&l.ID, &l.Timestamp)
}

func (r *LogRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.DeliveryLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, message_id, timestamp, status, response
		FROM delivery_logs WHERE status = $1
		ORDER BY timestamp DESC LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DeliveryLog
	for rows.Next() {
		var l models.DeliveryLog
		if err := rows.Scan(&l.ID, &l.MessageID, &l.Timestamp, &l.Status, &l.Response); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
