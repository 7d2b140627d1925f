package service

import (
	"context"
	"errors"
	"testing"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

func TestCreateParcel_StartsUnpaid(t *testing.T) {
	repo := newStubParcelRepo()
	svc := NewParcelService(repo, discardLogger)

	parcel, err := svc.Create(context.Background(), ports.CreateParcelInput{
		Title:       "books",
		SenderEmail: "sender@example.com",
		Cost:        12.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parcel.PaymentStatus != domain.ParcelUnpaid {
		t.Errorf("new parcels start unpaid, got %s", parcel.PaymentStatus)
	}
	if parcel.TrackingID != "" {
		t.Errorf("tracking id is assigned at payment time, got %q", parcel.TrackingID)
	}
	if parcel.CreatedAt.IsZero() {
		t.Error("created parcel must carry a timestamp")
	}
}

func TestGetParcel_UnknownID(t *testing.T) {
	svc := NewParcelService(newStubParcelRepo(), discardLogger)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrParcelNotFound) {
		t.Fatalf("expected ErrParcelNotFound, got %v", err)
	}
}

func TestDeleteParcel_ReportsCount(t *testing.T) {
	repo := newStubParcelRepo()
	repo.parcels["parcel_1"] = &domain.Parcel{ID: "parcel_1"}
	svc := NewParcelService(repo, discardLogger)

	deleted, err := svc.Delete(context.Background(), "parcel_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: want 1, got %d", deleted)
	}

	deleted, err = svc.Delete(context.Background(), "parcel_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete: want 0, got %d", deleted)
	}
}
