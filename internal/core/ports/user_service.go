package ports

import (
	"context"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// RegisterInput carries the self-registration payload. Role is never
// client-supplied; new accounts always start as "user".
type RegisterInput struct {
	Email string
	Name  string
}

// RegisterResult is returned by Register. AlreadyExists is true when the
// email was registered before; in that case no write happened.
type RegisterResult struct {
	AlreadyExists bool
	User          *domain.User
}

// UserService defines account use cases.
type UserService interface {
	// Register creates the user on first sight; re-registration is a no-op
	// signalled through AlreadyExists.
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	// RoleByEmail returns the stored role, defaulting to "user" for unknown
	// emails.
	RoleByEmail(ctx context.Context, email string) (string, error)
	List(ctx context.Context) ([]domain.User, error)
	// ChangeRole sets the role on the user identified by id. Admin-gated at
	// the transport layer.
	ChangeRole(ctx context.Context, id, role string) (UpdateOutcome, error)
}
