package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// ErrAlreadyResolved is returned by Resolve when the request has
// already left PENDING. The losing side of a concurrent resolve race
// observes this error.
var ErrAlreadyResolved = errors.New("swap request already resolved")

// SwapFilter narrows ledger listings.
type SwapFilter struct {
	Status        *domain.SwapStatus
	ParticipantID *string
	Limit         int
	Offset        int
}

// SwapRepository encapsulates swap request persistence. Listings are
// ordered by creation time descending, newest first.
type SwapRepository interface {
	Create(ctx context.Context, swap *domain.SwapRequest) error
	GetByID(ctx context.Context, id string) (*domain.SwapRequest, error)
	List(ctx context.Context, filter SwapFilter) ([]domain.SwapRequest, error)
	// Resolve atomically moves a PENDING request to the given terminal
	// status. The update is a compare-and-swap on status.
	Resolve(ctx context.Context, id string, status domain.SwapStatus, resolvedAt time.Time) (*domain.SwapRequest, error)
	Delete(ctx context.Context, id string) error
	// DeletePending removes a request only while it is still PENDING,
	// as a compare-and-swap like Resolve. A request that already left
	// PENDING yields ErrAlreadyResolved.
	DeletePending(ctx context.Context, id string) error
	// DeleteForParticipant removes every request the user takes part in.
	DeleteForParticipant(ctx context.Context, userID string) error
}

type swapRepository struct {
	pool *pgxpool.Pool
}

// NewSwapRepository returns a Postgres-backed implementation.
func NewSwapRepository(pool *pgxpool.Pool) SwapRepository {
	return &swapRepository{pool: pool}
}

const swapColumns = `id, from_user_id, to_user_id, skill_offered, skill_wanted, message, status, created_at, resolved_at`

func (r *swapRepository) Create(ctx context.Context, swap *domain.SwapRequest) error {
	const query = `
        INSERT INTO swap_requests (from_user_id, to_user_id, skill_offered, skill_wanted, message, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		swap.FromUserID,
		swap.ToUserID,
		swap.SkillOffered,
		swap.SkillWanted,
		swap.Message,
		swap.Status,
	).Scan(&swap.ID, &swap.CreatedAt)
}

func (r *swapRepository) GetByID(ctx context.Context, id string) (*domain.SwapRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM swap_requests WHERE id=$1`, swapColumns)
	return scanSwap(r.pool.QueryRow(ctx, query, id))
}

func (r *swapRepository) List(ctx context.Context, filter SwapFilter) ([]domain.SwapRequest, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ParticipantID != nil {
		args = append(args, *filter.ParticipantID)
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(from_user_id = $%d OR to_user_id = $%d)", idx, idx))
	}

	query := fmt.Sprintf(`SELECT %s FROM swap_requests`, swapColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	swaps := []domain.SwapRequest{}
	for rows.Next() {
		swap, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, *swap)
	}
	return swaps, rows.Err()
}

func (r *swapRepository) Resolve(ctx context.Context, id string, status domain.SwapStatus, resolvedAt time.Time) (*domain.SwapRequest, error) {
	query := fmt.Sprintf(`
        UPDATE swap_requests SET status=$1, resolved_at=$2
        WHERE id=$3 AND status=$4
        RETURNING %s`, swapColumns)

	swap, err := scanSwap(r.pool.QueryRow(ctx, query, status, resolvedAt, id, domain.SwapStatusPending))
	if err == nil {
		return swap, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Zero rows means either a missing id or a lost CAS race.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrAlreadyResolved
}

func (r *swapRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM swap_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *swapRepository) DeletePending(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM swap_requests WHERE id=$1 AND status=$2`, id, domain.SwapStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	// Zero rows means either a missing id or a lost race with Resolve.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyResolved
}

func (r *swapRepository) DeleteForParticipant(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM swap_requests WHERE from_user_id=$1 OR to_user_id=$1`, userID)
	return err
}

func scanSwap(row pgx.Row) (*domain.SwapRequest, error) {
	var swap domain.SwapRequest
	if err := row.Scan(
		&swap.ID,
		&swap.FromUserID,
		&swap.ToUserID,
		&swap.SkillOffered,
		&swap.SkillWanted,
		&swap.Message,
		&swap.Status,
		&swap.CreatedAt,
		&swap.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &swap, nil
}
