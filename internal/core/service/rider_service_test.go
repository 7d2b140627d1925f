package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

type stubRiderRepo struct {
	riders    map[string]*domain.Rider
	updateErr error
	nextID    int
}

func newStubRiderRepo() *stubRiderRepo {
	return &stubRiderRepo{riders: make(map[string]*domain.Rider)}
}

func (r *stubRiderRepo) seed(rider domain.Rider) {
	clone := rider
	r.riders[rider.ID] = &clone
}

func (r *stubRiderRepo) Create(_ context.Context, rider *domain.Rider) (*domain.Rider, error) {
	r.nextID++
	clone := *rider
	clone.ID = "rider_" + string(rune('0'+r.nextID))
	r.riders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRiderRepo) FindByID(_ context.Context, id string) (*domain.Rider, error) {
	rider, ok := r.riders[id]
	if !ok {
		return nil, domain.ErrRiderNotFound
	}
	clone := *rider
	return &clone, nil
}

func (r *stubRiderRepo) List(_ context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	var out []domain.Rider
	for _, rider := range r.riders {
		if status != "" && rider.Status != status {
			continue
		}
		out = append(out, *rider)
	}
	return out, nil
}

func (r *stubRiderRepo) UpdateStatus(_ context.Context, id string, status domain.RiderStatus) (ports.UpdateOutcome, error) {
	if r.updateErr != nil {
		return ports.UpdateOutcome{}, r.updateErr
	}
	rider, ok := r.riders[id]
	if !ok {
		return ports.UpdateOutcome{Matched: 0}, nil
	}
	modified := int64(0)
	if rider.Status != status {
		modified = 1
	}
	rider.Status = status
	return ports.UpdateOutcome{Matched: 1, Modified: modified}, nil
}

func TestApply_StartsPending(t *testing.T) {
	riders := newStubRiderRepo()
	svc := NewRiderService(riders, newStubUserRepo(), discardLogger)

	rider, err := svc.Apply(context.Background(), ports.ApplyRiderInput{
		Name:     "R. Rider",
		Email:    "rider@example.com",
		Phone:    "555-0101",
		District: "north",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rider.Status != domain.RiderPending {
		t.Errorf("applications start pending, got %s", rider.Status)
	}
	if rider.ID == "" {
		t.Error("created rider must carry the store id")
	}
	if rider.CreatedAt.IsZero() {
		t.Error("created rider must carry a timestamp")
	}
}

func TestSetStatus_ApprovalPromotesLinkedUser(t *testing.T) {
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Email: "rider@example.com", Status: domain.RiderPending, CreatedAt: time.Now().UTC()})
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Email: "rider@example.com", Role: domain.RoleUser})
	svc := NewRiderService(riders, users, discardLogger)

	result, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID:     "rider_1",
		Status:      domain.RiderApproved,
		LinkedEmail: "rider@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rider.Matched != 1 {
		t.Errorf("rider write outcome: %+v", result.Rider)
	}
	if result.RolePromotion == nil || !result.RolePromotion.Applied {
		t.Fatalf("approval must report an applied promotion, got %+v", result.RolePromotion)
	}
	if users.byEmail["rider@example.com"].Role != domain.RoleRider {
		t.Errorf("linked user not promoted: %s", users.byEmail["rider@example.com"].Role)
	}
	if riders.riders["rider_1"].Status != domain.RiderApproved {
		t.Errorf("rider status not persisted: %s", riders.riders["rider_1"].Status)
	}
}

func TestSetStatus_RejectionSkipsPromotion(t *testing.T) {
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Email: "rider@example.com", Status: domain.RiderPending})
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Email: "rider@example.com", Role: domain.RoleUser})
	svc := NewRiderService(riders, users, discardLogger)

	result, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID:     "rider_1",
		Status:      domain.RiderRejected,
		LinkedEmail: "rider@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RolePromotion != nil {
		t.Errorf("rejection must not attempt a promotion, got %+v", result.RolePromotion)
	}
	if users.byEmail["rider@example.com"].Role != domain.RoleUser {
		t.Errorf("user role must be untouched: %s", users.byEmail["rider@example.com"].Role)
	}
}

func TestSetStatus_TerminalTransitionRejected(t *testing.T) {
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Status: domain.RiderRejected})
	svc := NewRiderService(riders, newStubUserRepo(), discardLogger)

	_, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID: "rider_1",
		Status:  domain.RiderApproved,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if riders.riders["rider_1"].Status != domain.RiderRejected {
		t.Error("rejected transition must not write")
	}
}

func TestSetStatus_ReApprovalRepairsPromotion(t *testing.T) {
	// The rider is already approved but the linked account kept the user role
	// after a promotion failure. Re-issuing the approval re-runs it.
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Email: "rider@example.com", Status: domain.RiderApproved})
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Email: "rider@example.com", Role: domain.RoleUser})
	svc := NewRiderService(riders, users, discardLogger)

	result, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID:     "rider_1",
		Status:      domain.RiderApproved,
		LinkedEmail: "rider@example.com",
	})
	if err != nil {
		t.Fatalf("re-approval must be accepted: %v", err)
	}

	if result.RolePromotion == nil || !result.RolePromotion.Applied {
		t.Fatalf("re-approval must re-run the promotion, got %+v", result.RolePromotion)
	}
	if users.byEmail["rider@example.com"].Role != domain.RoleRider {
		t.Errorf("promotion not repaired: %s", users.byEmail["rider@example.com"].Role)
	}
}

func TestSetStatus_PromotionFailureSurfaced(t *testing.T) {
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Email: "rider@example.com", Status: domain.RiderPending})
	users := newStubUserRepo()
	users.updateErr = errors.New("db unavailable")
	svc := NewRiderService(riders, users, discardLogger)

	result, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID:     "rider_1",
		Status:      domain.RiderApproved,
		LinkedEmail: "rider@example.com",
	})
	if err != nil {
		t.Fatalf("promotion failure is a structured result, not an error: %v", err)
	}

	if result.Rider.Matched != 1 {
		t.Error("rider write must still apply")
	}
	if result.RolePromotion == nil || result.RolePromotion.Applied {
		t.Fatalf("promotion outcome must report the failure, got %+v", result.RolePromotion)
	}
	if result.RolePromotion.Error == "" {
		t.Error("promotion outcome must carry the cause")
	}
	if riders.riders["rider_1"].Status != domain.RiderApproved {
		t.Error("rider status write is not rolled back")
	}
}

func TestSetStatus_UnknownRider(t *testing.T) {
	svc := NewRiderService(newStubRiderRepo(), newStubUserRepo(), discardLogger)

	_, err := svc.SetStatus(context.Background(), ports.SetRiderStatusInput{
		RiderID: "missing",
		Status:  domain.RiderApproved,
	})
	if !errors.Is(err, domain.ErrRiderNotFound) {
		t.Fatalf("expected ErrRiderNotFound, got %v", err)
	}
}

func TestListRiders_FilterByStatus(t *testing.T) {
	riders := newStubRiderRepo()
	riders.seed(domain.Rider{ID: "rider_1", Status: domain.RiderPending})
	riders.seed(domain.Rider{ID: "rider_2", Status: domain.RiderApproved})
	svc := NewRiderService(riders, newStubUserRepo(), discardLogger)

	pending, err := svc.List(context.Background(), domain.RiderPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "rider_1" {
		t.Errorf("expected only the pending rider, got %+v", pending)
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected all riders, got %d", len(all))
	}
}
