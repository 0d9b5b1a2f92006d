package dto

import (
	"time"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// AnnounceRequest payload for posting an announcement.
type AnnounceRequest struct {
	Body string `json:"body"`
}

// AnnouncementSummary transport shape.
type AnnouncementSummary struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	PostedBy  string    `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnnouncementSummary maps a domain announcement.
func NewAnnouncementSummary(ann *domain.Announcement) AnnouncementSummary {
	return AnnouncementSummary{
		ID:        ann.ID,
		Body:      ann.Body,
		PostedBy:  ann.PostedBy,
		CreatedAt: ann.CreatedAt,
	}
}

// NewAnnouncementSummaries maps a slice of announcements.
func NewAnnouncementSummaries(items []domain.Announcement) []AnnouncementSummary {
	out := make([]AnnouncementSummary, 0, len(items))
	for i := range items {
		out = append(out, NewAnnouncementSummary(&items[i]))
	}
	return out
}
