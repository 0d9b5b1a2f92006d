package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

type memoryAnnouncementRepository struct {
	mu    sync.RWMutex
	items []domain.Announcement
}

// NewMemoryAnnouncementRepository returns an in-memory implementation.
func NewMemoryAnnouncementRepository() AnnouncementRepository {
	return &memoryAnnouncementRepository{}
}

func (r *memoryAnnouncementRepository) Create(_ context.Context, ann *domain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ann.ID == "" {
		ann.ID = uuid.NewString()
	}
	ann.CreatedAt = time.Now()
	r.items = append(r.items, *ann)
	return nil
}

func (r *memoryAnnouncementRepository) List(_ context.Context, limit, offset int) ([]domain.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	newest := make([]domain.Announcement, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		newest = append(newest, r.items[i])
	}
	return paginate(newest, limit, offset), nil
}
