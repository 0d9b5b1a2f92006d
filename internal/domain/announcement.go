package domain

import "time"

// Announcement is a platform-wide notice posted by an administrator.
type Announcement struct {
	ID        string
	Body      string
	PostedBy  string
	CreatedAt time.Time
}
