package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleRider = "rider"
	RoleAdmin = "admin"
)

var ErrUnauthorized = errors.New("unauthorized access")
var ErrForbidden = errors.New("forbidden access")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRole = errors.New("invalid role")

// User models an account holder identified by email. The role field is the
// single source of truth for authorization decisions; it is mutated only by
// an admin role change or by the rider-approval promotion.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleRider || r == RoleAdmin
}
