package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

type stubRiderService struct {
	riders       []domain.Rider
	applyRider   *domain.Rider
	statusResult *ports.RiderStatusResult
	statusErr    error
	lastStatus   ports.SetRiderStatusInput
	lastFilter   domain.RiderStatus
}

func (s *stubRiderService) Apply(_ context.Context, _ ports.ApplyRiderInput) (*domain.Rider, error) {
	return s.applyRider, nil
}

func (s *stubRiderService) List(_ context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	s.lastFilter = status
	return s.riders, nil
}

func (s *stubRiderService) SetStatus(_ context.Context, in ports.SetRiderStatusInput) (*ports.RiderStatusResult, error) {
	s.lastStatus = in
	return s.statusResult, s.statusErr
}

func TestListRiders_UnknownStatusFilterIs400(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{})
	c, _ := newHandlerContext(t, http.MethodGet, "/v1/riders?status=bogus", "")

	err := h.List(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestListRiders_PassesFilter(t *testing.T) {
	stub := &stubRiderService{riders: []domain.Rider{{ID: "rider_1", Status: domain.RiderPending}}}
	h := NewRiderHandler(stub)
	c, rec := newHandlerContext(t, http.MethodGet, "/v1/riders?status=pending", "")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastFilter != domain.RiderPending {
		t.Errorf("filter: got %q", stub.lastFilter)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0]["status"] != "pending" {
		t.Errorf("body: %+v", body)
	}
}

func TestApplyRider_Is201(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{
		applyRider: &domain.Rider{ID: "rider_1", Name: "R. Rider", Email: "rider@example.com", Status: domain.RiderPending},
	})
	c, rec := newHandlerContext(t, http.MethodPost, "/v1/riders", `{"name":"R. Rider","email":"rider@example.com"}`)

	if err := h.Apply(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: want 201, got %d", rec.Code)
	}
}

func TestApplyRider_MissingNameIs400(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{})
	c, _ := newHandlerContext(t, http.MethodPost, "/v1/riders", `{"email":"rider@example.com"}`)

	err := h.Apply(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSetRiderStatus_ApprovalReportsPromotion(t *testing.T) {
	stub := &stubRiderService{
		statusResult: &ports.RiderStatusResult{
			Rider:         ports.UpdateOutcome{Matched: 1, Modified: 1},
			RolePromotion: &ports.WriteOutcome{Applied: true},
		},
	}
	h := NewRiderHandler(stub)
	c, rec := newHandlerContext(t, http.MethodPatch, "/v1/riders/rider_1", `{"status":"approved","email":"rider@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("rider_1")

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastStatus.RiderID != "rider_1" || stub.lastStatus.Status != domain.RiderApproved || stub.lastStatus.LinkedEmail != "rider@example.com" {
		t.Errorf("service input: %+v", stub.lastStatus)
	}

	var body struct {
		Rider struct {
			Matched int64 `json:"matched"`
		} `json:"rider"`
		RolePromotion *struct {
			Applied bool   `json:"applied"`
			Error   string `json:"error,omitempty"`
		} `json:"role_promotion"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Rider.Matched != 1 {
		t.Errorf("rider outcome: %+v", body.Rider)
	}
	if body.RolePromotion == nil || !body.RolePromotion.Applied {
		t.Errorf("role_promotion: %+v", body.RolePromotion)
	}
}

func TestSetRiderStatus_RejectionOmitsPromotion(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{
		statusResult: &ports.RiderStatusResult{Rider: ports.UpdateOutcome{Matched: 1, Modified: 1}},
	})
	c, rec := newHandlerContext(t, http.MethodPatch, "/v1/riders/rider_1", `{"status":"rejected","email":"rider@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("rider_1")

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["role_promotion"]; ok {
		t.Error("rejection must not include a promotion outcome")
	}
}

func TestSetRiderStatus_UnknownStatusIs400(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{})
	c, _ := newHandlerContext(t, http.MethodPatch, "/v1/riders/rider_1", `{"status":"banana","email":"rider@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("rider_1")

	err := h.SetStatus(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 from validation, got %v", err)
	}
}

func TestSetRiderStatus_InvalidTransitionPropagates(t *testing.T) {
	h := NewRiderHandler(&stubRiderService{statusErr: domain.ErrInvalidTransition})
	c, _ := newHandlerContext(t, http.MethodPatch, "/v1/riders/rider_1", `{"status":"approved","email":"rider@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("rider_1")

	if err := h.SetStatus(c); err != domain.ErrInvalidTransition {
		t.Fatalf("domain errors must reach the error handler untouched, got %v", err)
	}
}
