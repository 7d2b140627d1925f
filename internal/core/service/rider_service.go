package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// RiderService implements the rider application workflow.
type RiderService struct {
	riders ports.RiderRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRiderService(riders ports.RiderRepository, users ports.UserRepository, logger zerolog.Logger) *RiderService {
	return &RiderService{riders: riders, users: users, logger: logger}
}

// Apply records a new rider application in pending status.
func (s *RiderService) Apply(ctx context.Context, in ports.ApplyRiderInput) (*domain.Rider, error) {
	rider := &domain.Rider{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		District:         in.District,
		BikeRegistration: in.BikeRegistration,
		Status:           domain.RiderPending,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.riders.Create(ctx, rider)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create rider application")
		return nil, err
	}

	s.logger.Info().Str("rider_id", created.ID).Str("email", created.Email).Msg("rider application received")
	return created, nil
}

func (s *RiderService) List(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	return s.riders.List(ctx, status)
}

// SetStatus transitions a rider record and, on approval, promotes the linked
// user account to the rider role.
func (s *RiderService) SetStatus(ctx context.Context, in ports.SetRiderStatusInput) (*ports.RiderStatusResult, error) {
	// 1. Load the record and validate the transition. Re-applying the current
	// status is allowed; leaving a terminal status is not.
	rider, err := s.riders.FindByID(ctx, in.RiderID)
	if err != nil {
		return nil, fmt.Errorf("set rider status: %w", err)
	}
	if !rider.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("set rider status: %w (from %s to %s)", domain.ErrInvalidTransition, rider.Status, in.Status)
	}

	// 2. Primary write: the rider status itself.
	outcome, err := s.riders.UpdateStatus(ctx, in.RiderID, in.Status)
	if err != nil {
		return nil, fmt.Errorf("set rider status: %w", err)
	}

	result := &ports.RiderStatusResult{Rider: outcome}

	// 3. Secondary write on approval: promote the linked user. Not rolled
	// back if it fails; re-issuing the approval re-runs it.
	if in.Status == domain.RiderApproved {
		promo := ports.WriteOutcome{Applied: true}
		if _, err := s.users.UpdateRoleByEmail(ctx, in.LinkedEmail, domain.RoleRider); err != nil {
			s.logger.Error().Err(err).
				Str("rider_id", in.RiderID).
				Str("email", in.LinkedEmail).
				Msg("rider approved but role promotion failed")
			promo = ports.WriteOutcome{Applied: false, Error: err.Error()}
		}
		result.RolePromotion = &promo
	}

	s.logger.Info().
		Str("rider_id", in.RiderID).
		Str("status", string(in.Status)).
		Msg("rider status updated")

	return result, nil
}
