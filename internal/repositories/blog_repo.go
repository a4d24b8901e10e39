package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/x986x/CW6/internal/models"
)

type BlogRepo struct {
	pool *pgxpool.Pool
}

func NewBlogRepo(pool *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{pool: pool}
}

const blogColumns = `id, title, slug, content, preview_image, is_published, views_count, owner_id, created_at, updated_at`

func (r *BlogRepo) Create(ctx context.Context, p *models.BlogPost) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (title, slug, content, preview_image, is_published, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, views_count, created_at, updated_at
	`, p.Title, p.Slug, p.Content, p.PreviewImage, p.IsPublished, p.OwnerID,
	).Scan(&p.ID, &p.ViewsCount, &p.CreatedAt, &p.UpdatedAt)
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var p models.BlogPost
	err := r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1
	`, slug).Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.PreviewImage,
		&p.IsPublished, &p.ViewsCount, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BlogRepo) Update(ctx context.Context, p *models.BlogPost) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE blog_posts SET title = $1, slug = $2, content = $3, preview_image = $4,
		       is_published = $5, updated_at = now()
		WHERE id = $6
	`, p.Title, p.Slug, p.Content, p.PreviewImage, p.IsPublished, p.ID)
	return err
}

func (r *BlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}

// IncrementViews bumps the view counter and returns the new value.
func (r *BlogRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		UPDATE blog_posts SET views_count = views_count + 1 WHERE id = $1
		RETURNING views_count
	`, id).Scan(&n)
	return n, err
}

func (r *BlogRepo) ListPublished(ctx context.Context, limit, offset int) ([]models.BlogPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+` FROM blog_posts WHERE is_published = true
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlogPosts(rows)
}

// RandomPublished picks up to n random published posts, for the home page.
func (r *BlogRepo) RandomPublished(ctx context.Context, n int) ([]models.BlogPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+` FROM blog_posts WHERE is_published = true
		ORDER BY random() LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlogPosts(rows)
}

func scanBlogPosts(rows pgx.Rows) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.PreviewImage,
			&p.IsPublished, &p.ViewsCount, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
