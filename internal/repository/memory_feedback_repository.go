package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

type memoryFeedbackRepository struct {
	mu    sync.RWMutex
	items []domain.Feedback
}

// NewMemoryFeedbackRepository returns an in-memory implementation.
func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{}
}

func (r *memoryFeedbackRepository) Create(_ context.Context, fb *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	fb.CreatedAt = time.Now()
	r.items = append(r.items, *fb)
	return nil
}

func (r *memoryFeedbackRepository) ListForUser(_ context.Context, toUserID string) ([]domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Feedback{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ToUserID == toUserID {
			matched = append(matched, r.items[i])
		}
	}
	return matched, nil
}

func (r *memoryFeedbackRepository) ExistsForSwapAuthor(_ context.Context, swapID, fromUserID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fb := range r.items {
		if fb.SwapID == swapID && fb.FromUserID == fromUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryFeedbackRepository) DeleteForSwap(_ context.Context, swapID string) error {
	r.deleteWhere(func(fb domain.Feedback) bool { return fb.SwapID == swapID })
	return nil
}

func (r *memoryFeedbackRepository) DeleteForUser(_ context.Context, userID string) error {
	r.deleteWhere(func(fb domain.Feedback) bool {
		return fb.FromUserID == userID || fb.ToUserID == userID
	})
	return nil
}

func (r *memoryFeedbackRepository) deleteWhere(match func(domain.Feedback) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, fb := range r.items {
		if !match(fb) {
			kept = append(kept, fb)
		}
	}
	r.items = kept
}
