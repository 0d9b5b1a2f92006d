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

// SwapService owns the swap request ledger and its state machine:
// PENDING is the sole initial state, ACCEPTED and REJECTED are terminal.
type SwapService struct {
	swaps      repository.SwapRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// SwapDependencies bundles repositories for the swap service.
type SwapDependencies struct {
	SwapRepo   repository.SwapRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// SwapSubmitInput describes a swap request submission.
type SwapSubmitInput struct {
	ToUserID     string
	SkillOffered string
	SkillWanted  string
	Message      string
}

// SwapListInput describes ledger listing parameters.
type SwapListInput struct {
	Status        string
	ParticipantID *string
	Page          int
	PageSize      int
}

// NewSwapService constructs the service.
func NewSwapService(deps SwapDependencies) *SwapService {
	return &SwapService{
		swaps:      deps.SwapRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit validates and records a new swap request. Preconditions are
// checked in a fixed order and nothing is written until all pass.
func (s *SwapService) Submit(ctx context.Context, fromUserID string, input SwapSubmitInput) (*domain.SwapRequest, error) {
	if fromUserID == input.ToUserID {
		return nil, apperrors.NewSelfRequest()
	}

	fromUser, err := s.users.GetByID(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": fromUserID})
		}
		return nil, err
	}
	toUser, err := s.users.GetByID(ctx, input.ToUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": input.ToUserID})
		}
		return nil, err
	}

	if fromUser.Banned {
		return nil, apperrors.NewUserBanned(fromUser.ID)
	}
	if toUser.Banned {
		return nil, apperrors.NewUserBanned(toUser.ID)
	}

	if !fromUser.OffersSkill(input.SkillOffered) {
		return nil, apperrors.NewInvalidSkillOffered(input.SkillOffered)
	}
	if !toUser.OffersSkill(input.SkillWanted) {
		return nil, apperrors.NewInvalidSkillWanted(input.SkillWanted)
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewEmptyMessage()
	}

	swap := &domain.SwapRequest{
		FromUserID:   fromUserID,
		ToUserID:     input.ToUserID,
		SkillOffered: input.SkillOffered,
		SkillWanted:  input.SkillWanted,
		Message:      message,
		Status:       domain.SwapStatusPending,
	}
	if err := s.swaps.Create(ctx, swap); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventSwapSubmitted,
		ActorID: fromUserID,
		Payload: events.SwapSubmittedPayload{
			SwapID:       swap.ID,
			FromUserID:   swap.FromUserID,
			ToUserID:     swap.ToUserID,
			SkillOffered: swap.SkillOffered,
			SkillWanted:  swap.SkillWanted,
		},
	})
	return swap, nil
}

// Respond applies the recipient's accept or reject decision. The status
// transition is a compare-and-swap: of two concurrent responders, one
// wins and the other observes ALREADY_RESOLVED.
func (s *SwapService) Respond(ctx context.Context, requestID string, decision domain.SwapDecision, actingUserID string) (*domain.SwapRequest, error) {
	target, ok := decision.TargetStatus()
	if !ok {
		return nil, apperrors.NewValidationError("decision must be accept or reject", map[string]any{"decision": decision})
	}

	swap, err := s.swaps.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("swap request", map[string]any{"swap_id": requestID})
		}
		return nil, err
	}
	if swap.ToUserID != actingUserID {
		return nil, apperrors.NewUnauthorized("only the recipient may respond")
	}

	resolved, err := s.swaps.Resolve(ctx, requestID, target, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyResolved) {
			return nil, apperrors.NewAlreadyResolved()
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("swap request", map[string]any{"swap_id": requestID})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventSwapResolved,
		ActorID: actingUserID,
		Payload: events.SwapResolvedPayload{
			SwapID:    resolved.ID,
			OldStatus: domain.SwapStatusPending,
			NewStatus: resolved.Status,
		},
	})
	return resolved, nil
}

// List returns a page of the ledger, newest first. Pages past the end
// are empty, never an error.
func (s *SwapService) List(ctx context.Context, input SwapListInput) ([]domain.SwapRequest, error) {
	status, err := parseStatusFilter(input.Status)
	if err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return s.swaps.List(ctx, repository.SwapFilter{
		Status:        status,
		ParticipantID: input.ParticipantID,
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	})
}

// Get returns a single swap request visible to one of its participants.
func (s *SwapService) Get(ctx context.Context, requestID, actingUserID string) (*domain.SwapRequest, error) {
	swap, err := s.swaps.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("swap request", map[string]any{"swap_id": requestID})
		}
		return nil, err
	}
	if swap.FromUserID != actingUserID && swap.ToUserID != actingUserID {
		return nil, apperrors.NewUnauthorized("not a participant")
	}
	return swap, nil
}

// Withdraw lets the sender retract a request that is still pending.
// The removal is a compare-and-swap on status, so a respond landing
// after the sender check cannot be withdrawn away.
func (s *SwapService) Withdraw(ctx context.Context, requestID, actingUserID string) error {
	swap, err := s.swaps.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("swap request", map[string]any{"swap_id": requestID})
		}
		return err
	}
	if swap.FromUserID != actingUserID {
		return apperrors.NewUnauthorized("only the sender may withdraw")
	}
	if err := s.swaps.DeletePending(ctx, requestID); err != nil {
		if errors.Is(err, repository.ErrAlreadyResolved) {
			return apperrors.NewAlreadyResolved()
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("swap request", map[string]any{"swap_id": requestID})
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventSwapWithdrawn,
		ActorID: actingUserID,
		Payload: events.SwapWithdrawnPayload{SwapID: requestID},
	})
	return nil
}

func parseStatusFilter(raw string) (*domain.SwapStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return nil, nil
	case "pending":
		status := domain.SwapStatusPending
		return &status, nil
	case "accepted":
		status := domain.SwapStatusAccepted
		return &status, nil
	case "rejected":
		status := domain.SwapStatusRejected
		return &status, nil
	}
	return nil, apperrors.NewValidationError("unknown status filter", map[string]any{"status": raw})
}

func (s *SwapService) publishEvent(ctx context.Context, event events.Event) {
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
