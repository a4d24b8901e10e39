package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, email, full_name, comment, is_active, owner_id, created_at, updated_at`

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (email, full_name, comment, is_active, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.Email, c.FullName, c.Comment, c.IsActive, c.OwnerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+` FROM clients WHERE id = $1
	`, id).Scan(&c.ID, &c.Email, &c.FullName, &c.Comment, &c.IsActive, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clients SET email = $1, full_name = $2, comment = $3, is_active = $4, updated_at = now()
		WHERE id = $5
	`, c.Email, c.FullName, c.Comment, c.IsActive, c.ID)
	return err
}

func (r *ClientRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clients SET is_active = $1, updated_at = now() WHERE id = $2
	`, active, id)
	return err
}

func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

type ClientFilter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

func (r *ClientRepo) List(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	argIdx := 1

	if f.OwnerID != nil {
		query += fmt.Sprintf(" WHERE owner_id = $%d", argIdx)
		args = append(args, *f.OwnerID)
		argIdx++
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Email, &c.FullName, &c.Comment, &c.IsActive, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM clients WHERE is_active = true`).Scan(&n)
	return n, err
}
