package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/skill-swap-service/internal/api/dto"
	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/service"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// AdminHandler exposes moderation endpoints. Route-level guards ensure
// only admins reach these.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListAllUsers(c.Context(), parseIntQuery(c, "page", 1), parseIntQuery(c, "page_size", 20))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfiles(users)})
}

// BanUser PATCH /admin/users/:id/ban.
func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	return h.setBanned(c, true)
}

// UnbanUser PATCH /admin/users/:id/unban.
func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	return h.setBanned(c, false)
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.admin.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListSwaps GET /admin/swaps.
func (h *AdminHandler) ListSwaps(c *fiber.Ctx) error {
	swaps, err := h.admin.ListAllSwaps(c.Context(), parseIntQuery(c, "page", 1), parseIntQuery(c, "page_size", 20))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSwapSummaries(swaps)})
}

// DeleteSwap DELETE /admin/swaps/:id.
func (h *AdminHandler) DeleteSwap(c *fiber.Ctx) error {
	if err := h.admin.DeleteSwap(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Announce POST /admin/announcements.
func (h *AdminHandler) Announce(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AnnounceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ann, err := h.admin.Announce(c.Context(), principal.User.ID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnnouncementSummary(ann)})
}

// ListAnnouncements GET /announcements.
func (h *AdminHandler) ListAnnouncements(c *fiber.Ctx) error {
	items, err := h.admin.ListAnnouncements(c.Context(), parseIntQuery(c, "page", 1), parseIntQuery(c, "page_size", 20))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnnouncementSummaries(items)})
}

func (h *AdminHandler) setBanned(c *fiber.Ctx, banned bool) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.admin.SetBanned(c.Context(), principal.User.ID, c.Params("id"), banned)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserProfile(user)})
}
