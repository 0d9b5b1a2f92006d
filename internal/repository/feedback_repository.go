package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// FeedbackRepository stores swap feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	ListForUser(ctx context.Context, toUserID string) ([]domain.Feedback, error)
	ExistsForSwapAuthor(ctx context.Context, swapID, fromUserID string) (bool, error)
	// DeleteForSwap removes all feedback attached to a swap request.
	DeleteForSwap(ctx context.Context, swapID string) error
	// DeleteForUser removes all feedback authored by or directed at the user.
	DeleteForUser(ctx context.Context, userID string) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (swap_id, from_user_id, to_user_id, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		fb.SwapID,
		fb.FromUserID,
		fb.ToUserID,
		fb.Rating,
		fb.Comment,
	).Scan(&fb.ID, &fb.CreatedAt)
}

func (r *feedbackRepository) ListForUser(ctx context.Context, toUserID string) ([]domain.Feedback, error) {
	const query = `
        SELECT id, swap_id, from_user_id, to_user_id, rating, comment, created_at
        FROM feedback WHERE to_user_id=$1
        ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, toUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *fb)
	}
	return items, rows.Err()
}

func (r *feedbackRepository) ExistsForSwapAuthor(ctx context.Context, swapID, fromUserID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM feedback WHERE swap_id=$1 AND from_user_id=$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, swapID, fromUserID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *feedbackRepository) DeleteForSwap(ctx context.Context, swapID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE swap_id=$1`, swapID)
	return err
}

func (r *feedbackRepository) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM feedback WHERE from_user_id=$1 OR to_user_id=$1`, userID)
	return err
}

func scanFeedback(row pgx.Row) (*domain.Feedback, error) {
	var fb domain.Feedback
	if err := row.Scan(
		&fb.ID,
		&fb.SwapID,
		&fb.FromUserID,
		&fb.ToUserID,
		&fb.Rating,
		&fb.Comment,
		&fb.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &fb, nil
}
