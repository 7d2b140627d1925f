package domain

import (
	"errors"
	"time"
)

// RiderStatus represents the lifecycle state of a rider application.
type RiderStatus string

const (
	RiderPending  RiderStatus = "pending"
	RiderApproved RiderStatus = "approved"
	RiderRejected RiderStatus = "rejected"
)

var ErrRiderNotFound = errors.New("rider not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-applying the current status is always permitted (the approval side
// effect re-runs, which is how a failed role promotion is repaired).
// Approved and rejected are terminal otherwise.
func (s RiderStatus) CanTransitionTo(next RiderStatus) bool {
	if s == next {
		return true
	}
	return s == RiderPending
}

// Valid reports whether s is a known rider status.
func (s RiderStatus) Valid() bool {
	switch s {
	case RiderPending, RiderApproved, RiderRejected:
		return true
	}
	return false
}

// Rider is a rider application record. Approval promotes the linked user's
// role to "rider"; the two writes are not transactional.
type Rider struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone,omitempty"`
	District         string      `json:"district,omitempty"`
	BikeRegistration string      `json:"bike_registration,omitempty"`
	Status           RiderStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}
