package dto

import (
	"time"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Location      string   `json:"location"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  string   `json:"availability"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserProfile is the public shape of a member, never carrying the
// password hash.
type UserProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Location      string    `json:"location"`
	Bio           string    `json:"bio"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Availability  string    `json:"availability"`
	Rating        float64   `json:"rating"`
	RatingCount   int       `json:"rating_count"`
	Role          string    `json:"role"`
	Public        bool      `json:"public"`
	Banned        bool      `json:"banned"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpdateProfileRequest replaces mutable profile fields.
type UpdateProfileRequest struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Bio           string   `json:"bio"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  string   `json:"availability"`
}

// AddSkillRequest appends a skill to a profile list.
type AddSkillRequest struct {
	Skill string `json:"skill"`
}

// VisibilityRequest toggles directory visibility.
type VisibilityRequest struct {
	Public bool `json:"public"`
}

// NewUserProfile maps a domain user to its transport shape.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Location:      user.Location,
		Bio:           user.Bio,
		SkillsOffered: user.SkillsOffered,
		SkillsWanted:  user.SkillsWanted,
		Availability:  string(user.Availability),
		Rating:        user.Rating,
		RatingCount:   user.RatingCount,
		Role:          string(user.Role),
		Public:        user.Public,
		Banned:        user.Banned,
		CreatedAt:     user.CreatedAt,
	}
}

// NewUserProfiles maps a slice of domain users.
func NewUserProfiles(users []domain.User) []UserProfile {
	items := make([]UserProfile, 0, len(users))
	for i := range users {
		items = append(items, NewUserProfile(&users[i]))
	}
	return items
}
