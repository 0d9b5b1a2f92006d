package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// memoryUserRepository is an in-memory UserRepository. It preserves
// insertion order for listings and hands out copies so readers never
// observe a half-updated record.
type memoryUserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]*domain.User
}

// NewMemoryUserRepository returns an in-memory implementation, used when
// no Postgres DSN is configured and by tests.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("email %s already registered", user.Email)
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = copyUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyUser(user), nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepository) List(_ context.Context, filter UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.User{}
	for _, id := range r.order {
		user, ok := r.users[id]
		if !ok {
			continue
		}
		if !filter.IncludeBanned && user.Banned {
			continue
		}
		if !filter.IncludePrivate && !user.Public {
			continue
		}
		if filter.Availability != nil && user.Availability != *filter.Availability {
			continue
		}
		if !matchesSearch(user, filter.Search) {
			continue
		}
		matched = append(matched, *copyUser(user))
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// matchesSearch applies the case-insensitive substring match against
// name, offered skills and wanted skills.
func matchesSearch(user *domain.User, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(user.Name), term) {
		return true
	}
	for _, skill := range user.SkillsOffered {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	for _, skill := range user.SkillsWanted {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

// paginate slices out [offset, offset+limit), clamped to the sequence
// length. Requests past the end yield an empty slice, not an error.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyUser(user *domain.User) *domain.User {
	clone := *user
	clone.SkillsOffered = append([]string(nil), user.SkillsOffered...)
	clone.SkillsWanted = append([]string(nil), user.SkillsWanted...)
	return &clone
}
