package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// CreateParcelInput carries a new parcel payload.
type CreateParcelInput struct {
	Title       string
	SenderEmail string
	Cost        float64
}

// ParcelService defines the parcel CRUD the payment workflow touches.
type ParcelService interface {
	Create(ctx context.Context, in CreateParcelInput) (*domain.Parcel, error)
	Get(ctx context.Context, id string) (*domain.Parcel, error)
	List(ctx context.Context, senderEmail string) ([]domain.Parcel, error)
	Delete(ctx context.Context, id string) (int64, error)
}
