package dto

import (
	"time"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// SubmitSwapRequest payload for creating a swap request.
type SubmitSwapRequest struct {
	ToUserID     string `json:"to_user_id"`
	SkillOffered string `json:"skill_offered"`
	SkillWanted  string `json:"skill_wanted"`
	Message      string `json:"message"`
}

// RespondSwapRequest payload for accept/reject.
type RespondSwapRequest struct {
	Decision string `json:"decision"`
}

// SwapSummary is the transport shape of a ledger entry.
type SwapSummary struct {
	ID           string     `json:"id"`
	FromUserID   string     `json:"from_user_id"`
	ToUserID     string     `json:"to_user_id"`
	SkillOffered string     `json:"skill_offered"`
	SkillWanted  string     `json:"skill_wanted"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// FeedbackRequest payload for leaving feedback on an accepted swap.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackSummary transport shape.
type FeedbackSummary struct {
	ID         string    `json:"id"`
	SwapID     string    `json:"swap_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSwapSummary maps a domain swap request.
func NewSwapSummary(swap *domain.SwapRequest) SwapSummary {
	return SwapSummary{
		ID:           swap.ID,
		FromUserID:   swap.FromUserID,
		ToUserID:     swap.ToUserID,
		SkillOffered: swap.SkillOffered,
		SkillWanted:  swap.SkillWanted,
		Message:      swap.Message,
		Status:       string(swap.Status),
		CreatedAt:    swap.CreatedAt,
		ResolvedAt:   swap.ResolvedAt,
	}
}

// NewSwapSummaries maps a slice of domain swap requests.
func NewSwapSummaries(swaps []domain.SwapRequest) []SwapSummary {
	items := make([]SwapSummary, 0, len(swaps))
	for i := range swaps {
		items = append(items, NewSwapSummary(&swaps[i]))
	}
	return items
}

// NewFeedbackSummary maps a domain feedback record.
func NewFeedbackSummary(fb *domain.Feedback) FeedbackSummary {
	return FeedbackSummary{
		ID:         fb.ID,
		SwapID:     fb.SwapID,
		FromUserID: fb.FromUserID,
		ToUserID:   fb.ToUserID,
		Rating:     fb.Rating,
		Comment:    fb.Comment,
		CreatedAt:  fb.CreatedAt,
	}
}

// NewFeedbackSummaries maps a slice of feedback records.
func NewFeedbackSummaries(items []domain.Feedback) []FeedbackSummary {
	out := make([]FeedbackSummary, 0, len(items))
	for i := range items {
		out = append(out, NewFeedbackSummary(&items[i]))
	}
	return out
}
