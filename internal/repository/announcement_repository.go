package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// AnnouncementRepository stores platform announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *domain.Announcement) error
	List(ctx context.Context, limit, offset int) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository returns a Postgres-backed implementation.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, ann *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (body, posted_by)
        VALUES ($1,$2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, ann.Body, ann.PostedBy).Scan(&ann.ID, &ann.CreatedAt)
}

func (r *announcementRepository) List(ctx context.Context, limit, offset int) ([]domain.Announcement, error) {
	query := `
        SELECT id, body, posted_by, created_at
        FROM announcements
        ORDER BY created_at DESC, id DESC`

	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}
	if offset > 0 {
		args = append(args, offset)
		if len(args) == 1 {
			query += " OFFSET $1"
		} else {
			query += " OFFSET $2"
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Announcement{}
	for rows.Next() {
		var (
			ann      domain.Announcement
			postedBy *string
		)
		if err := rows.Scan(&ann.ID, &ann.Body, &postedBy, &ann.CreatedAt); err != nil {
			return nil, err
		}
		if postedBy != nil {
			ann.PostedBy = *postedBy
		}
		items = append(items, ann)
	}
	return items, rows.Err()
}
