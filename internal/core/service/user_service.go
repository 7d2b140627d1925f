package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// UserService implements account registration and role management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates a user account on first registration. Re-registering an
// existing email is a no-op returning the stored account with
// AlreadyExists=true.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil {
		s.logger.Debug().Str("email", in.Email).Msg("registration replay")
		return &ports.RegisterResult{AlreadyExists: true, User: existing}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		Email:     in.Email,
		Name:      in.Name,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Concurrent registration: the unique index won the race for us.
		if errors.Is(err, domain.ErrUserExists) {
			stored, findErr := s.repo.FindByEmail(ctx, in.Email)
			if findErr != nil {
				return nil, findErr
			}
			return &ports.RegisterResult{AlreadyExists: true, User: stored}, nil
		}
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return &ports.RegisterResult{User: created}, nil
}

// RoleByEmail returns the stored role for email, defaulting to "user" when
// the account does not exist.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.RoleUser, nil
		}
		return "", err
	}
	return user.Role, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// ChangeRole sets the role on the user identified by id. The caller's admin
// role is enforced at the transport layer from the verified identity.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (ports.UpdateOutcome, error) {
	if !domain.ValidRole(role) {
		return ports.UpdateOutcome{}, domain.ErrInvalidRole
	}

	outcome, err := s.repo.UpdateRoleByID(ctx, id, role)
	if err != nil {
		return ports.UpdateOutcome{}, err
	}
	if outcome.Matched == 0 {
		return outcome, domain.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id).Str("role", role).Msg("role changed")
	return outcome, nil
}
