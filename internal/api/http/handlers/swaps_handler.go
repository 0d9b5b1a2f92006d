package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/skill-swap-service/internal/api/dto"
	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/service"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// SwapsHandler manages the swap request ledger endpoints.
type SwapsHandler struct {
	swaps    *service.SwapService
	feedback *service.FeedbackService
}

// NewSwapsHandler constructs handler.
func NewSwapsHandler(swapService *service.SwapService, feedbackService *service.FeedbackService) *SwapsHandler {
	return &SwapsHandler{swaps: swapService, feedback: feedbackService}
}

// Submit POST /swaps.
func (h *SwapsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitSwapRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ToUserID == "" || req.SkillOffered == "" || req.SkillWanted == "" {
		return apperrors.NewValidationError("to_user_id, skill_offered, skill_wanted required", nil)
	}

	swap, err := h.swaps.Submit(c.Context(), principal.User.ID, service.SwapSubmitInput{
		ToUserID:     req.ToUserID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSwapSummary(swap)})
}

// List GET /swaps. Participant scope defaults to the caller.
func (h *SwapsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	participantID := principal.User.ID
	swaps, err := h.swaps.List(c.Context(), service.SwapListInput{
		Status:        c.Query("status", "all"),
		ParticipantID: &participantID,
		Page:          parseIntQuery(c, "page", 1),
		PageSize:      parseIntQuery(c, "page_size", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSwapSummaries(swaps)})
}

// Get GET /swaps/:id.
func (h *SwapsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	swap, err := h.swaps.Get(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSwapSummary(swap)})
}

// Respond PATCH /swaps/:id.
func (h *SwapsHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RespondSwapRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	swap, err := h.swaps.Respond(c.Context(), c.Params("id"), domain.SwapDecision(req.Decision), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSwapSummary(swap)})
}

// Withdraw DELETE /swaps/:id.
func (h *SwapsHandler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.swaps.Withdraw(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// LeaveFeedback POST /swaps/:id/feedback.
func (h *SwapsHandler) LeaveFeedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	fb, err := h.feedback.Leave(c.Context(), principal.User.ID, c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackSummary(fb)})
}
