package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/events"
	"github.com/spec-kit/skill-swap-service/internal/persistence"
	"github.com/spec-kit/skill-swap-service/internal/repository"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// AdminService covers moderation: user ban/removal, ledger cleanup and
// platform announcements.
type AdminService struct {
	users         repository.UserRepository
	swaps         repository.SwapRepository
	feedback      repository.FeedbackRepository
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
	cache         *persistence.Redis
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	UserRepo         repository.UserRepository
	SwapRepo         repository.SwapRepository
	FeedbackRepo     repository.FeedbackRepository
	AnnouncementRepo repository.AnnouncementRepository
	Dispatcher       events.Dispatcher
	Cache            *persistence.Redis
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:         deps.UserRepo,
		swaps:         deps.SwapRepo,
		feedback:      deps.FeedbackRepo,
		announcements: deps.AnnouncementRepo,
		dispatcher:    deps.Dispatcher,
		cache:         deps.Cache,
	}
}

// ListAllUsers returns every account including banned and private ones.
func (s *AdminService) ListAllUsers(ctx context.Context, page, pageSize int) ([]domain.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.users.List(ctx, repository.UserFilter{
		IncludeBanned:  true,
		IncludePrivate: true,
		Limit:          pageSize,
		Offset:         (page - 1) * pageSize,
	})
}

// SetBanned flips the ban flag. A banned user disappears from the
// public directory and can no longer take part in swaps.
func (s *AdminService) SetBanned(ctx context.Context, adminID, userID string, banned bool) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	user.Banned = banned
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "directory:public:page1:size20")

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserBanned,
		ActorID: adminID,
		Payload: events.UserBannedPayload{UserID: userID, Banned: banned},
	})
	return user, nil
}

// DeleteUser removes an account together with its swap requests and
// feedback. Children go first so the user row never leaves dangling
// references.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}

	if err := s.feedback.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.swaps.DeleteForParticipant(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	s.cache.Invalidate(ctx, "directory:public:page1:size20")
	return nil
}

// ListAllSwaps returns the full ledger for moderation.
func (s *AdminService) ListAllSwaps(ctx context.Context, page, pageSize int) ([]domain.SwapRequest, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.swaps.List(ctx, repository.SwapFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
}

// DeleteSwap removes a swap request regardless of its status, along
// with any feedback left on it.
func (s *AdminService) DeleteSwap(ctx context.Context, swapID string) error {
	if _, err := s.swaps.GetByID(ctx, swapID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("swap request", map[string]any{"swap_id": swapID})
		}
		return err
	}

	if err := s.feedback.DeleteForSwap(ctx, swapID); err != nil {
		return err
	}
	if err := s.swaps.Delete(ctx, swapID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("swap request", map[string]any{"swap_id": swapID})
		}
		return err
	}
	return nil
}

// Announce posts a platform-wide notice.
func (s *AdminService) Announce(ctx context.Context, adminID, body string) (*domain.Announcement, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("announcement body required", nil)
	}

	ann := &domain.Announcement{Body: body, PostedBy: adminID}
	if err := s.announcements.Create(ctx, ann); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventAnnouncementPosted,
		ActorID: adminID,
		Payload: events.AnnouncementPostedPayload{
			AnnouncementID: ann.ID,
			BodyPreview:    bodyPreview(ann.Body, 120),
		},
	})
	return ann, nil
}

// ListAnnouncements returns announcements, newest first.
func (s *AdminService) ListAnnouncements(ctx context.Context, page, pageSize int) ([]domain.Announcement, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.announcements.List(ctx, pageSize, (page-1)*pageSize)
}

func (s *AdminService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
