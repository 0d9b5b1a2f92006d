package events

import (
	"time"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSwapSubmitted      EventType = "swap_submitted"
	EventSwapResolved       EventType = "swap_resolved"
	EventSwapWithdrawn      EventType = "swap_withdrawn"
	EventUserBanned         EventType = "user_banned"
	EventAnnouncementPosted EventType = "announcement_posted"
	EventFeedbackLeft       EventType = "feedback_left"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SwapSubmittedPayload payload.
type SwapSubmittedPayload struct {
	SwapID       string `json:"swap_id"`
	FromUserID   string `json:"from_user_id"`
	ToUserID     string `json:"to_user_id"`
	SkillOffered string `json:"skill_offered"`
	SkillWanted  string `json:"skill_wanted"`
}

// SwapResolvedPayload payload.
type SwapResolvedPayload struct {
	SwapID    string            `json:"swap_id"`
	OldStatus domain.SwapStatus `json:"old_status"`
	NewStatus domain.SwapStatus `json:"new_status"`
}

// SwapWithdrawnPayload payload.
type SwapWithdrawnPayload struct {
	SwapID string `json:"swap_id"`
}

// UserBannedPayload payload.
type UserBannedPayload struct {
	UserID string `json:"user_id"`
	Banned bool   `json:"banned"`
}

// AnnouncementPostedPayload payload.
type AnnouncementPostedPayload struct {
	AnnouncementID string `json:"announcement_id"`
	BodyPreview    string `json:"body_preview"`
}

// FeedbackLeftPayload payload.
type FeedbackLeftPayload struct {
	SwapID   string `json:"swap_id"`
	ToUserID string `json:"to_user_id"`
	Rating   int    `json:"rating"`
}
