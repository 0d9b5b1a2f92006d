package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// memorySwapRepository is an in-memory SwapRepository. Insertion order
// doubles as creation order, so reverse iteration yields the
// newest-first ordering the ledger requires.
type memorySwapRepository struct {
	mu    sync.RWMutex
	order []string
	swaps map[string]*domain.SwapRequest
}

// NewMemorySwapRepository returns an in-memory implementation.
func NewMemorySwapRepository() SwapRepository {
	return &memorySwapRepository{swaps: make(map[string]*domain.SwapRequest)}
}

func (r *memorySwapRepository) Create(_ context.Context, swap *domain.SwapRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if swap.ID == "" {
		swap.ID = uuid.NewString()
	}
	swap.CreatedAt = time.Now()

	r.swaps[swap.ID] = copySwap(swap)
	r.order = append(r.order, swap.ID)
	return nil
}

func (r *memorySwapRepository) GetByID(_ context.Context, id string) (*domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	swap, ok := r.swaps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copySwap(swap), nil
}

func (r *memorySwapRepository) List(_ context.Context, filter SwapFilter) ([]domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.SwapRequest{}
	for i := len(r.order) - 1; i >= 0; i-- {
		swap, ok := r.swaps[r.order[i]]
		if !ok {
			continue
		}
		if filter.Status != nil && swap.Status != *filter.Status {
			continue
		}
		if filter.ParticipantID != nil &&
			swap.FromUserID != *filter.ParticipantID && swap.ToUserID != *filter.ParticipantID {
			continue
		}
		matched = append(matched, *copySwap(swap))
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

// Resolve performs the compare-and-swap on status under the write lock.
// Exactly one of two concurrent callers can win the PENDING check.
func (r *memorySwapRepository) Resolve(_ context.Context, id string, status domain.SwapStatus, resolvedAt time.Time) (*domain.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	swap, ok := r.swaps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if swap.Status != domain.SwapStatusPending {
		return nil, ErrAlreadyResolved
	}
	swap.Status = status
	swap.ResolvedAt = &resolvedAt
	return copySwap(swap), nil
}

func (r *memorySwapRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.swaps[id]; !ok {
		return pgx.ErrNoRows
	}
	r.remove(id)
	return nil
}

// DeletePending is the delete twin of Resolve: the PENDING check and
// the removal happen under the same write lock.
func (r *memorySwapRepository) DeletePending(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	swap, ok := r.swaps[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if swap.Status != domain.SwapStatusPending {
		return ErrAlreadyResolved
	}
	r.remove(id)
	return nil
}

func (r *memorySwapRepository) DeleteForParticipant(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, swap := range r.swaps {
		if swap.FromUserID == userID || swap.ToUserID == userID {
			r.remove(id)
		}
	}
	return nil
}

// remove expects the write lock to be held.
func (r *memorySwapRepository) remove(id string) {
	delete(r.swaps, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func copySwap(swap *domain.SwapRequest) *domain.SwapRequest {
	clone := *swap
	if swap.ResolvedAt != nil {
		at := *swap.ResolvedAt
		clone.ResolvedAt = &at
	}
	return &clone
}
