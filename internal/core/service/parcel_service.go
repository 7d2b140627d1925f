package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// ParcelService implements the parcel CRUD the payment workflow touches.
type ParcelService struct {
	repo   ports.ParcelRepository
	logger zerolog.Logger
}

func NewParcelService(repo ports.ParcelRepository, logger zerolog.Logger) *ParcelService {
	return &ParcelService{repo: repo, logger: logger}
}

func (s *ParcelService) Create(ctx context.Context, in ports.CreateParcelInput) (*domain.Parcel, error) {
	parcel := &domain.Parcel{
		Title:         in.Title,
		SenderEmail:   in.SenderEmail,
		Cost:          in.Cost,
		PaymentStatus: domain.ParcelUnpaid,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, parcel)
	if err != nil {
		s.logger.Error().Err(err).Str("sender", in.SenderEmail).Msg("failed to create parcel")
		return nil, err
	}

	s.logger.Info().Str("parcel_id", created.ID).Str("sender", created.SenderEmail).Msg("parcel created")
	return created, nil
}

func (s *ParcelService) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ParcelService) List(ctx context.Context, senderEmail string) ([]domain.Parcel, error) {
	return s.repo.List(ctx, senderEmail)
}

func (s *ParcelService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info().Str("parcel_id", id).Msg("parcel deleted")
	}
	return deleted, nil
}
