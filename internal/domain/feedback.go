package domain

import "time"

// Feedback is a rating left by one participant of an accepted swap
// for the other participant. At most one per (swap, author).
type Feedback struct {
	ID         string
	SwapID     string
	FromUserID string
	ToUserID   string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
