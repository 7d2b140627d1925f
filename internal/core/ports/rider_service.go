package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// ApplyRiderInput carries a new rider application.
type ApplyRiderInput struct {
	Name             string
	Email            string
	Phone            string
	District         string
	BikeRegistration string
}

// SetRiderStatusInput carries an admin status transition. LinkedEmail
// identifies the user account promoted on approval.
type SetRiderStatusInput struct {
	RiderID     string
	Status      domain.RiderStatus
	LinkedEmail string
}

// RiderStatusResult separates the primary rider write from the secondary
// role promotion so partial failure stays observable. RolePromotion is nil
// unless the transition was an approval.
type RiderStatusResult struct {
	Rider         UpdateOutcome
	RolePromotion *WriteOutcome
}

// RiderService defines rider workflow use cases.
type RiderService interface {
	Apply(ctx context.Context, in ApplyRiderInput) (*domain.Rider, error)
	List(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error)
	// SetStatus transitions a rider record and, on approval, promotes the
	// linked user's role to "rider". The promotion is best effort: a failed
	// second write is reported, not rolled back, and re-issuing the approval
	// re-runs it.
	SetStatus(ctx context.Context, in SetRiderStatusInput) (*RiderStatusResult, error)
}
