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
	"github.com/spec-kit/skill-swap-service/internal/repository"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// FeedbackService records ratings on accepted swaps and maintains each
// member's running rating average.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	swaps      repository.SwapRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// FeedbackDependencies bundles repositories for the feedback service.
type FeedbackDependencies struct {
	FeedbackRepo repository.FeedbackRepository
	SwapRepo     repository.SwapRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	return &FeedbackService{
		feedback:   deps.FeedbackRepo,
		swaps:      deps.SwapRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Leave records feedback from one participant of an accepted swap for
// the other, at most once per author per swap.
func (s *FeedbackService) Leave(ctx context.Context, actorID, swapID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": rating})
	}

	swap, err := s.swaps.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("swap request", map[string]any{"swap_id": swapID})
		}
		return nil, err
	}
	if swap.FromUserID != actorID && swap.ToUserID != actorID {
		return nil, apperrors.NewUnauthorized("not a participant")
	}
	if swap.Status != domain.SwapStatusAccepted {
		return nil, apperrors.NewValidationError("feedback allowed only on accepted swaps", map[string]any{"status": swap.Status})
	}

	exists, err := s.feedback.ExistsForSwapAuthor(ctx, swapID, actorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("feedback already left for this swap", nil)
	}

	toUserID := swap.FromUserID
	if actorID == swap.FromUserID {
		toUserID = swap.ToUserID
	}

	fb := &domain.Feedback{
		SwapID:     swapID,
		FromUserID: actorID,
		ToUserID:   toUserID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	if err := s.applyRating(ctx, toUserID, rating); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFeedbackLeft,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.FeedbackLeftPayload{
				SwapID:   swapID,
				ToUserID: toUserID,
				Rating:   rating,
			},
		})
	}
	return fb, nil
}

// ListForUser returns feedback received by a member, newest first.
func (s *FeedbackService) ListForUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	return s.feedback.ListForUser(ctx, userID)
}

// applyRating folds a new score into the receiver's running mean.
func (s *FeedbackService) applyRating(ctx context.Context, userID string, rating int) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	total := user.Rating*float64(user.RatingCount) + float64(rating)
	user.RatingCount++
	user.Rating = total / float64(user.RatingCount)
	return s.users.Update(ctx, user)
}
