package domain

import "time"

// Availability enumerates when a user is free to swap.
type Availability string

const (
	AvailabilityWeekends Availability = "WEEKENDS"
	AvailabilityEvenings Availability = "EVENINGS"
	AvailabilityWeekdays Availability = "WEEKDAYS"
	AvailabilityFlexible Availability = "FLEXIBLE"
)

// ValidAvailability reports whether the value is a known enumeration member.
func ValidAvailability(a Availability) bool {
	switch a {
	case AvailabilityWeekends, AvailabilityEvenings, AvailabilityWeekdays, AvailabilityFlexible:
		return true
	}
	return false
}

// Role distinguishes administrators from regular members.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the domain model for marketplace members.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Location      string
	Bio           string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  Availability
	Rating        float64
	RatingCount   int
	Role          Role
	Public        bool
	Banned        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OffersSkill reports whether skill is in the offered list (exact match).
func (u *User) OffersSkill(skill string) bool {
	for _, s := range u.SkillsOffered {
		if s == skill {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
