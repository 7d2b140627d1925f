package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

const paidStatus = "paid"

// ConfirmCache is a non-authoritative fast path for repeated confirm calls
// (Redis). A hit short-circuits before the oracle round trip; a miss falls
// through to the payments collection, whose unique index on transaction_id
// remains the idempotency anchor.
type ConfirmCache interface {
	// Lookup returns the recorded transaction and tracking ids for a session,
	// or ok=false on a miss.
	Lookup(ctx context.Context, sessionID string) (transactionID, trackingID string, ok bool, err error)
	Mark(ctx context.Context, sessionID, transactionID, trackingID string) error
}

// TrackingGenerator issues tracking ids for newly paid parcels.
type TrackingGenerator interface {
	Generate() string
}

// PaymentService implements checkout creation and payment reconciliation.
type PaymentService struct {
	payments ports.PaymentRepository
	parcels  ports.ParcelRepository
	checkout ports.CheckoutProvider
	tracking TrackingGenerator
	cache    ConfirmCache
	logger   zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	parcels ports.ParcelRepository,
	checkout ports.CheckoutProvider,
	tracking TrackingGenerator,
	cache ConfirmCache,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		parcels:  parcels,
		checkout: checkout,
		tracking: tracking,
		cache:    cache,
		logger:   logger,
	}
}

// BeginCheckout opens an external checkout session for a parcel and returns
// the redirect URL. The session reference handed back to the client is the
// capability later presented to Confirm.
func (s *PaymentService) BeginCheckout(ctx context.Context, in ports.BeginCheckoutInput) (string, error) {
	url, err := s.checkout.CreateSession(ctx, ports.CreateSessionInput{
		ParcelID:    in.ParcelID,
		ParcelName:  in.ParcelName,
		Cost:        in.Cost,
		SenderEmail: in.SenderEmail,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("parcel_id", in.ParcelID).Msg("failed to create checkout session")
		return "", err
	}

	s.logger.Info().Str("parcel_id", in.ParcelID).Msg("checkout session created")
	return url, nil
}

// Confirm reconciles a completed checkout session. Safe to call any number
// of times for the same session: the existence check runs before any write,
// and a racing duplicate insert is caught by the unique index and converted
// into the already-processed response.
func (s *PaymentService) Confirm(ctx context.Context, sessionID string) (*ports.ConfirmResult, error) {
	// 1. Fast path: a session confirmed earlier skips the oracle round trip.
	if txID, trackingID, ok, err := s.cache.Lookup(ctx, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("confirm cache lookup failed, continuing")
	} else if ok {
		s.logger.Debug().Str("session_id", sessionID).Msg("confirm replay served from cache")
		return &ports.ConfirmResult{
			AlreadyProcessed: true,
			TransactionID:    txID,
			TrackingID:       trackingID,
		}, nil
	}

	// 2. Query the payment oracle.
	session, err := s.checkout.Session(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	transactionID := session.PaymentIntentID

	// 3. Idempotency check before any mutation.
	existing, err := s.payments.FindByTransactionID(ctx, transactionID)
	if err == nil {
		s.markConfirmed(ctx, sessionID, transactionID, existing.TrackingID)
		return &ports.ConfirmResult{
			AlreadyProcessed: true,
			TransactionID:    transactionID,
			TrackingID:       existing.TrackingID,
		}, nil
	}
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	// 4. Not settled yet, a normal state, not an error. No writes.
	if session.PaymentStatus != paidStatus {
		s.logger.Info().Str("session_id", sessionID).Str("payment_status", session.PaymentStatus).Msg("session not settled")
		return &ports.ConfirmResult{Success: false, TransactionID: transactionID}, nil
	}

	// 5. Settled: mark the parcel paid first, then record the payment. If the
	// process dies between the two, re-running confirm rewrites identical
	// parcel fields and inserts the missing record.
	trackingID := s.tracking.Generate()
	parcelID := session.Metadata["parcelId"]

	parcelOutcome, err := s.parcels.MarkPaid(ctx, parcelID, trackingID)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: mark parcel paid: %w", err)
	}

	payment := &domain.Payment{
		TransactionID: transactionID,
		ParcelID:      parcelID,
		ParcelName:    session.Metadata["parcelName"],
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		CustomerEmail: session.CustomerEmail,
		PaymentStatus: session.PaymentStatus,
		TrackingID:    trackingID,
		PaidAt:        time.Now().UTC(),
	}

	result := &ports.ConfirmResult{
		Success:       true,
		TransactionID: transactionID,
		TrackingID:    trackingID,
		Parcel:        parcelOutcome,
		PaymentRecord: ports.WriteOutcome{Applied: true},
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		// Lost a race with a concurrent confirm: the other call's record won
		// the unique index. Fall back to its tracking id.
		if errors.Is(err, domain.ErrPaymentExists) {
			winner, findErr := s.payments.FindByTransactionID(ctx, transactionID)
			if findErr != nil {
				return nil, fmt.Errorf("confirm payment: %w", findErr)
			}
			s.markConfirmed(ctx, sessionID, transactionID, winner.TrackingID)
			return &ports.ConfirmResult{
				AlreadyProcessed: true,
				TransactionID:    transactionID,
				TrackingID:       winner.TrackingID,
			}, nil
		}

		// Parcel is marked paid but the record is missing. Report the partial
		// failure; the caller repairs it by re-running confirm.
		s.logger.Error().Err(err).
			Str("transaction_id", transactionID).
			Str("parcel_id", parcelID).
			Msg("parcel marked paid but payment record insert failed")
		result.PaymentRecord = ports.WriteOutcome{Applied: false, Error: err.Error()}
		return result, nil
	}

	s.markConfirmed(ctx, sessionID, transactionID, trackingID)

	s.logger.Info().
		Str("transaction_id", transactionID).
		Str("parcel_id", parcelID).
		Str("tracking_id", trackingID).
		Msg("payment confirmed")

	return result, nil
}

// List returns payment history newest first. A client-supplied email filter
// is untrusted input: it must match the caller's verified email.
func (s *PaymentService) List(ctx context.Context, in ports.ListPaymentsInput) ([]domain.Payment, error) {
	if in.FilterEmail != "" && in.FilterEmail != in.CallerEmail {
		return nil, domain.ErrForbidden
	}
	return s.payments.List(ctx, in.FilterEmail)
}

func (s *PaymentService) markConfirmed(ctx context.Context, sessionID, transactionID, trackingID string) {
	if err := s.cache.Mark(ctx, sessionID, transactionID, trackingID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to mark confirm cache")
	}
}
