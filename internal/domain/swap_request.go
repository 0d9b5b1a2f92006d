package domain

import "time"

// SwapStatus enumerates lifecycle states for swap requests.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// SwapDecision is the recipient's answer to a pending request.
type SwapDecision string

const (
	SwapDecisionAccept SwapDecision = "accept"
	SwapDecisionReject SwapDecision = "reject"
)

// TargetStatus maps a decision to its terminal status.
func (d SwapDecision) TargetStatus() (SwapStatus, bool) {
	switch d {
	case SwapDecisionAccept:
		return SwapStatusAccepted, true
	case SwapDecisionReject:
		return SwapStatusRejected, true
	}
	return "", false
}

// SwapRequest is a proposal to exchange one offered skill for another.
// Status leaves PENDING at most once; ACCEPTED and REJECTED are terminal.
type SwapRequest struct {
	ID           string
	FromUserID   string
	ToUserID     string
	SkillOffered string
	SkillWanted  string
	Message      string
	Status       SwapStatus
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}

// Resolved reports whether the request reached a terminal status.
func (r *SwapRequest) Resolved() bool {
	return r.Status != SwapStatusPending
}
