package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/skill-swap-service/internal/api/dto"
	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/service"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// AuthHandler exposes signup and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, token, exp, err := h.auth.Signup(c.Context(), service.SignupInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Location:      req.Location,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  domain.Availability(req.Availability),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
