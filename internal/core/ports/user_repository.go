package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// RoleStore is the narrow read view used by the authorization middleware.
type RoleStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	RoleStore
	// Create inserts a new user. Returns domain.ErrUserExists when the email
	// is already registered (users.email carries a unique index).
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRoleByID(ctx context.Context, id, role string) (UpdateOutcome, error)
	// UpdateRoleByEmail sets the role on the user identified by email.
	// Used by the rider-approval promotion.
	UpdateRoleByEmail(ctx context.Context, email, role string) (UpdateOutcome, error)
}
