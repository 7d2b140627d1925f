package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// BeginCheckoutInput starts an external checkout for a parcel.
type BeginCheckoutInput struct {
	ParcelID    string
	ParcelName  string
	Cost        float64
	SenderEmail string
}

// ConfirmResult is the reconciliation outcome of a confirm call.
//
// AlreadyProcessed means an earlier call recorded this transaction; the
// store was not touched. Success=false with no error means the session is
// not yet settled. Parcel and PaymentRecord expose the two writes
// separately so a crash between them stays observable.
type ConfirmResult struct {
	Success          bool
	AlreadyProcessed bool
	TransactionID    string
	TrackingID       string
	Parcel           UpdateOutcome
	PaymentRecord    WriteOutcome
}

// ListPaymentsInput carries the payment-history query. CallerEmail is the
// verified identity; FilterEmail is untrusted client input cross-checked
// against it.
type ListPaymentsInput struct {
	FilterEmail string
	CallerEmail string
}

// PaymentService defines checkout and reconciliation use cases.
type PaymentService interface {
	BeginCheckout(ctx context.Context, in BeginCheckoutInput) (url string, err error)
	// Confirm reconciles a completed checkout session: queries the payment
	// oracle, enforces idempotency on the transaction id, marks the parcel
	// paid with a fresh tracking id, and records the payment.
	Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error)
	List(ctx context.Context, in ListPaymentsInput) ([]domain.Payment, error)
}
