// Package seed loads fixture data into the in-memory store so the
// service is browsable out of the box.
package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/skill-swap-service/internal/auth"
	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/repository"
)

type fixtureUser struct {
	name          string
	email         string
	password      string
	location      string
	bio           string
	skillsOffered []string
	skillsWanted  []string
	availability  domain.Availability
	role          domain.Role
	public        bool
}

var fixtureUsers = []fixtureUser{
	{
		name:          "Sarah Chen",
		email:         "sarah@example.com",
		password:      "password123",
		location:      "San Francisco",
		bio:           "Frontend developer, happy to trade lessons.",
		skillsOffered: []string{"React", "JavaScript"},
		skillsWanted:  []string{"UI Design"},
		availability:  domain.AvailabilityEvenings,
		role:          domain.RoleUser,
		public:        true,
	},
	{
		name:          "John Park",
		email:         "john@example.com",
		password:      "password123",
		location:      "Seattle",
		bio:           "Designer by day, cook by night.",
		skillsOffered: []string{"UI Design", "Figma"},
		skillsWanted:  []string{"React"},
		availability:  domain.AvailabilityWeekends,
		role:          domain.RoleUser,
		public:        true,
	},
	{
		name:          "Sujal Sule",
		email:         "sujal@example.com",
		password:      "password123",
		location:      "Mumbai",
		skillsOffered: []string{"HTML", "CSS"},
		skillsWanted:  []string{"Python"},
		availability:  domain.AvailabilityWeekends,
		role:          domain.RoleUser,
		public:        true,
	},
	{
		name:         "Admin User",
		email:        "admin@example.com",
		password:     "admin123",
		availability: domain.AvailabilityFlexible,
		role:         domain.RoleAdmin,
		public:       false,
	},
}

// Fixtures populates the repositories with sample users and a pending
// swap between the first two.
func Fixtures(ctx context.Context, users repository.UserRepository, swaps repository.SwapRepository, bcryptCost int, logger *zap.Logger) error {
	created := make(map[string]*domain.User, len(fixtureUsers))

	for _, f := range fixtureUsers {
		hash, err := auth.HashPassword(f.password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Name:          f.name,
			Email:         f.email,
			PasswordHash:  hash,
			Location:      f.location,
			Bio:           f.bio,
			SkillsOffered: f.skillsOffered,
			SkillsWanted:  f.skillsWanted,
			Availability:  f.availability,
			Role:          f.role,
			Public:        f.public,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		created[f.email] = user
	}

	fixtureSwaps := []*domain.SwapRequest{
		{
			FromUserID:   created["sarah@example.com"].ID,
			ToUserID:     created["john@example.com"].ID,
			SkillOffered: "React",
			SkillWanted:  "UI Design",
			Message:      "Happy to trade an intro to React for design feedback.",
			Status:       domain.SwapStatusPending,
		},
		{
			FromUserID:   created["sujal@example.com"].ID,
			ToUserID:     created["sarah@example.com"].ID,
			SkillOffered: "CSS",
			SkillWanted:  "JavaScript",
			Message:      "Could walk you through modern CSS layout in exchange for some JS help.",
			Status:       domain.SwapStatusPending,
		},
	}
	for _, swap := range fixtureSwaps {
		if err := swaps.Create(ctx, swap); err != nil {
			return err
		}
	}

	logger.Info("fixtures seeded", zap.Int("users", len(fixtureUsers)), zap.Int("swaps", len(fixtureSwaps)))
	return nil
}
