package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/skill-swap-service/internal/api/dto"
	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/service"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// UsersHandler manages directory and profile endpoints.
type UsersHandler struct {
	directory *service.DirectoryService
	feedback  *service.FeedbackService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(directory *service.DirectoryService, feedback *service.FeedbackService) *UsersHandler {
	return &UsersHandler{directory: directory, feedback: feedback}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.Context(), service.DirectoryFilter{
		Query:        c.Query("q"),
		Availability: c.Query("availability"),
		Page:         parseIntQuery(c, "page", 1),
		PageSize:     parseIntQuery(c, "page_size", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfiles(users)})
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.directory.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

// UpdateProfile PUT /users/:id.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.UpdateProfile(c.Context(), principal.User, c.Params("id"), service.ProfileUpdateInput{
		Name:          req.Name,
		Location:      req.Location,
		Bio:           req.Bio,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  domain.Availability(req.Availability),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

// AddOfferedSkill POST /users/:id/skills/offered.
func (h *UsersHandler) AddOfferedSkill(c *fiber.Ctx) error {
	return h.addSkill(c, service.SkillListOffered)
}

// AddWantedSkill POST /users/:id/skills/wanted.
func (h *UsersHandler) AddWantedSkill(c *fiber.Ctx) error {
	return h.addSkill(c, service.SkillListWanted)
}

// RemoveOfferedSkill DELETE /users/:id/skills/offered/:index.
func (h *UsersHandler) RemoveOfferedSkill(c *fiber.Ctx) error {
	return h.removeSkill(c, service.SkillListOffered)
}

// RemoveWantedSkill DELETE /users/:id/skills/wanted/:index.
func (h *UsersHandler) RemoveWantedSkill(c *fiber.Ctx) error {
	return h.removeSkill(c, service.SkillListWanted)
}

// SetVisibility PATCH /users/:id/visibility.
func (h *UsersHandler) SetVisibility(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.VisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.SetVisibility(c.Context(), principal.User, c.Params("id"), req.Public)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

// ListFeedback GET /users/:id/feedback.
func (h *UsersHandler) ListFeedback(c *fiber.Ctx) error {
	items, err := h.feedback.ListForUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackSummaries(items)})
}

func (h *UsersHandler) addSkill(c *fiber.Ctx, list service.SkillList) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.directory.AddSkill(c.Context(), principal.User, c.Params("id"), list, req.Skill)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

func (h *UsersHandler) removeSkill(c *fiber.Ctx, list service.SkillList) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return apperrors.NewValidationError("index must be an integer", nil)
	}

	user, err := h.directory.RemoveSkill(c.Context(), principal.User, c.Params("id"), list, index)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
