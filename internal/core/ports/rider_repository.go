package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// RiderRepository defines persistence operations for rider applications.
type RiderRepository interface {
	Create(ctx context.Context, r *domain.Rider) (*domain.Rider, error)
	FindByID(ctx context.Context, id string) (*domain.Rider, error)
	// List returns riders sorted by creation time ascending. An empty status
	// returns all riders.
	List(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error)
	UpdateStatus(ctx context.Context, id string, status domain.RiderStatus) (UpdateOutcome, error)
}
