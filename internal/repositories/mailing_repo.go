package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

type MailingRepo struct {
	pool *pgxpool.Pool
}

func NewMailingRepo(pool *pgxpool.Pool) *MailingRepo {
	return &MailingRepo{pool: pool}
}

const mailingColumns = `id, start_time, frequency, status, end_time, owner_id, created_at, updated_at`

func (r *MailingRepo) Create(ctx context.Context, m *models.Mailing) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO mailings (start_time, frequency, status, end_time, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, m.StartTime, m.Frequency, m.Status, m.EndTime, m.OwnerID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return err
	}

	if err := setRecipients(ctx, tx, m.ID, m.RecipientIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *MailingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Mailing, error) {
	var m models.Mailing
	err := r.pool.QueryRow(ctx, `
		SELECT `+mailingColumns+` FROM mailings WHERE id = $1
	`, id).Scan(&m.ID, &m.StartTime, &m.Frequency, &m.Status, &m.EndTime, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	ids, err := r.recipientIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	m.RecipientIDs = ids
	return &m, nil
}

// Save persists schedule and status fields. Used both by the editor flow and
// by the dispatch job when it advances start_time and completes a firing.
func (r *MailingRepo) Save(ctx context.Context, m *models.Mailing) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE mailings SET start_time = $1, frequency = $2, status = $3, end_time = $4, updated_at = now()
		WHERE id = $5
	`, m.StartTime, m.Frequency, m.Status, m.EndTime, m.ID)
	return err
}

func (r *MailingRepo) SetRecipients(ctx context.Context, mailingID uuid.UUID, recipientIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mailing_recipients WHERE mailing_id = $1`, mailingID); err != nil {
		return err
	}
	if err := setRecipients(ctx, tx, mailingID, recipientIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func setRecipients(ctx context.Context, tx pgx.Tx, mailingID uuid.UUID, recipientIDs []uuid.UUID) error {
	for _, rid := range recipientIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO mailing_recipients (mailing_id, client_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, mailingID, rid); err != nil {
			return err
		}
	}
	return nil
}

func (r *MailingRepo) recipientIDs(ctx context.Context, mailingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT client_id FROM mailing_recipients WHERE mailing_id = $1
	`, mailingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListRecipientEmails returns the email addresses currently attached to a
// mailing, in storage order.
func (r *MailingRepo) ListRecipientEmails(ctx context.Context, mailingID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.email
		FROM mailing_recipients mr
		JOIN clients c ON c.id = mr.client_id
		WHERE mr.mailing_id = $1
		ORDER BY c.created_at
	`, mailingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *MailingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mailings WHERE id = $1`, id)
	return err
}

// ListByStatus returns every mailing in the given status, in a consistent
// enumeration order. The dispatch job calls this once per tick.
func (r *MailingRepo) ListByStatus(ctx context.Context, status string) ([]models.Mailing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+mailingColumns+` FROM mailings WHERE status = $1 ORDER BY created_at
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMailings(rows)
}

type MailingFilter struct {
	OwnerID *uuid.UUID
	Status  *string
	Limit   int
	Offset  int
}

func (r *MailingRepo) List(ctx context.Context, f MailingFilter) ([]models.Mailing, error) {
	query := `SELECT ` + mailingColumns + ` FROM mailings`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerID != nil {
		where = append(where, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *f.OwnerID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
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
	return scanMailings(rows)
}

func scanMailings(rows pgx.Rows) ([]models.Mailing, error) {
	var mailings []models.Mailing
	for rows.Next() {
		var m models.Mailing
		if err := rows.Scan(&m.ID, &m.StartTime, &m.Frequency, &m.Status, &m.EndTime, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mailings = append(mailings, m)
	}
	return mailings, rows.Err()
}

func (r *MailingRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM mailings`).Scan(&n)
	return n, err
}

// CountActive counts mailings in created or started status.
func (r *MailingRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM mailings WHERE status IN ($1, $2)
	`, models.MailingStatusCreated, models.MailingStatusStarted).Scan(&n)
	return n, err
}
