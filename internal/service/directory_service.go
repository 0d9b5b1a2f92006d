package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/persistence"
	"github.com/spec-kit/skill-swap-service/internal/repository"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// DirectoryService exposes the user directory: browsing, profile
// editing and skill list maintenance.
type DirectoryService struct {
	users    repository.UserRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
}

// DirectoryDependencies bundles requirements for the directory service.
type DirectoryDependencies struct {
	UserRepo repository.UserRepository
	Cache    *persistence.Redis
	CacheTTL time.Duration
}

// DirectoryFilter describes directory browsing parameters.
type DirectoryFilter struct {
	Query        string
	Availability string
	Page         int
	PageSize     int
}

// ProfileUpdateInput replaces the mutable profile fields.
type ProfileUpdateInput struct {
	Name          string
	Location      string
	Bio           string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  domain.Availability
}

// SkillList selects which of the two skill lists an operation targets.
type SkillList int

const (
	SkillListOffered SkillList = iota
	SkillListWanted
)

// Only the default-shaped first page of the public directory is ever
// cached, so one key covers everything invalidateDirectory must clear.
const (
	directoryCacheKey        = "directory:public:page1:size20"
	defaultDirectoryPageSize = 20
)

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:    deps.UserRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
	}
}

// ListUsers returns a page of the public directory. Banned and private
// profiles are excluded. The default first page is served from Redis
// when available.
func (s *DirectoryService) ListUsers(ctx context.Context, filter DirectoryFilter) ([]domain.User, error) {
	availability, err := parseAvailabilityFilter(filter.Availability)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultDirectoryPageSize
	}

	cacheable := directoryCacheable(filter.Query, availability, page, pageSize)
	if cacheable {
		if payload, ok := s.cache.GetCached(ctx, directoryCacheKey); ok {
			var users []domain.User
			if err := json.Unmarshal(payload, &users); err == nil {
				return users, nil
			}
		}
	}

	users, err := s.users.List(ctx, repository.UserFilter{
		Search:       filter.Query,
		Availability: availability,
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(users); err == nil {
			s.cache.SetCached(ctx, directoryCacheKey, payload, s.cacheTTL)
		}
	}
	return users, nil
}

// GetUser fetches a single profile by id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the mutable fields of a profile. Only the
// owner may edit, with an admin override.
func (s *DirectoryService) UpdateProfile(ctx context.Context, actor *domain.User, targetID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.authorizeProfileWrite(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidAvailability(input.Availability) {
		return nil, apperrors.NewValidationError("unknown availability", map[string]any{"availability": input.Availability})
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Location = strings.TrimSpace(input.Location)
	user.Bio = strings.TrimSpace(input.Bio)
	user.SkillsOffered = append([]string(nil), input.SkillsOffered...)
	user.SkillsWanted = append([]string(nil), input.SkillsWanted...)
	user.Availability = input.Availability

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return user, nil
}

// AddSkill appends a skill to one of the profile's lists. Exact-match
// duplicates are rejected.
func (s *DirectoryService) AddSkill(ctx context.Context, actor *domain.User, targetID string, list SkillList, skill string) (*domain.User, error) {
	user, err := s.authorizeProfileWrite(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperrors.NewValidationError("skill required", nil)
	}

	target := &user.SkillsOffered
	if list == SkillListWanted {
		target = &user.SkillsWanted
	}
	for _, existing := range *target {
		if existing == skill {
			return nil, apperrors.NewDuplicateSkill(skill)
		}
	}
	*target = append(*target, skill)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return user, nil
}

// RemoveSkill removes the skill at index from one of the profile's
// lists, preserving the order of the rest.
func (s *DirectoryService) RemoveSkill(ctx context.Context, actor *domain.User, targetID string, list SkillList, index int) (*domain.User, error) {
	user, err := s.authorizeProfileWrite(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	target := &user.SkillsOffered
	if list == SkillListWanted {
		target = &user.SkillsWanted
	}
	if index < 0 || index >= len(*target) {
		return nil, apperrors.NewIndexOutOfRange(index)
	}
	*target = append((*target)[:index], (*target)[index+1:]...)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return user, nil
}

// SetVisibility toggles whether the profile appears in the public
// directory.
func (s *DirectoryService) SetVisibility(ctx context.Context, actor *domain.User, targetID string, public bool) (*domain.User, error) {
	user, err := s.authorizeProfileWrite(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	user.Public = public
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return user, nil
}

// authorizeProfileWrite resolves the target first, so a missing
// profile reports NOT_FOUND to owner and non-owner alike.
func (s *DirectoryService) authorizeProfileWrite(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": targetID})
		}
		return nil, err
	}

	if actor.ID != targetID && !actor.IsAdmin() {
		return nil, apperrors.NewUnauthorized("not the profile owner")
	}
	return user, nil
}

func (s *DirectoryService) invalidateDirectory(ctx context.Context) {
	s.cache.Invalidate(ctx, directoryCacheKey)
}

// directoryCacheable reports whether a listing request matches the one
// cached shape: unfiltered, first page, default size.
func directoryCacheable(query string, availability *domain.Availability, page, pageSize int) bool {
	return query == "" && availability == nil && page == 1 && pageSize == defaultDirectoryPageSize
}

func parseAvailabilityFilter(raw string) (*domain.Availability, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	availability := domain.Availability(strings.ToUpper(raw))
	if !domain.ValidAvailability(availability) {
		return nil, apperrors.NewValidationError("unknown availability", map[string]any{"availability": raw})
	}
	return &availability, nil
}
