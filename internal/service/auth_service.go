package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/config"
	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/repository"
	apperrors "github.com/spec-kit/skill-swap-service/pkg/util"
)

// AuthService coordinates signup and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// SignupInput describes a new account request. Role is always USER;
// admins are provisioned out of band.
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	Location      string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  domain.Availability
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new member account and returns a signed token.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	if input.Availability == "" {
		input.Availability = domain.AvailabilityFlexible
	}
	if !domain.ValidAvailability(input.Availability) {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown availability", map[string]any{"availability": input.Availability})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		PasswordHash:  hash,
		Location:      strings.TrimSpace(input.Location),
		SkillsOffered: input.SkillsOffered,
		SkillsWanted:  input.SkillsWanted,
		Availability:  input.Availability,
		Role:          domain.RoleUser,
		Public:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a member by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Banned {
		return nil, "", time.Time{}, apperrors.NewUserBanned(user.ID)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
