package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	// Create inserts a payment record. The transaction_id unique index makes
	// this the at-most-once gate: a duplicate insert returns
	// domain.ErrPaymentExists.
	Create(ctx context.Context, p *domain.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	// List returns payments newest first by paid_at, optionally filtered by
	// customer email.
	List(ctx context.Context, customerEmail string) ([]domain.Payment, error)
}
