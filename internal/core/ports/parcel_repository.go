package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// ParcelRepository defines persistence operations for parcels.
type ParcelRepository interface {
	Create(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error)
	FindByID(ctx context.Context, id string) (*domain.Parcel, error)
	// List returns parcels, optionally filtered by sender email.
	List(ctx context.Context, senderEmail string) ([]domain.Parcel, error)
	// Delete removes a parcel and reports how many documents were removed.
	Delete(ctx context.Context, id string) (int64, error)
	// MarkPaid atomically sets payment_status=paid and the tracking id on a
	// single parcel document. Re-running with the same arguments is safe: it
	// rewrites identical values.
	MarkPaid(ctx context.Context, id, trackingID string) (UpdateOutcome, error)
}
