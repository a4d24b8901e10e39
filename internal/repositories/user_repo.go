package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, country, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, role, is_active, is_verified_email, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Country, u.Role,
	).Scan(&u.ID, &u.Role, &u.IsActive, &u.IsVerifiedEmail, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) scanOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, country,
		       role, is_active, is_verified_email, created_at, updated_at
		FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.Country, &u.Role, &u.IsActive, &u.IsVerifiedEmail, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, phone = $3, country = $4, updated_at = now()
		WHERE id = $5
	`, u.FirstName, u.LastName, u.Phone, u.Country, u.ID)
	return err
}

func (r *UserRepo) SetVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET is_verified_email = true, updated_at = now() WHERE id = $1
	`, id)
	return err
}

func (r *UserRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, hash, id)
	return err
}

// Verification codes

func (r *UserRepo) CreateVerification(ctx context.Context, v *models.EmailVerification) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO email_verifications (user_id, code, expiration)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, v.UserID, v.Code, v.Expiration).Scan(&v.ID, &v.CreatedAt)
}

func (r *UserRepo) GetVerification(ctx context.Context, userID uuid.UUID, code uuid.UUID) (*models.EmailVerification, error) {
	var v models.EmailVerification
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, code, expiration, created_at
		FROM email_verifications WHERE user_id = $1 AND code = $2
	`, userID, code).Scan(&v.ID, &v.UserID, &v.Code, &v.Expiration, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
