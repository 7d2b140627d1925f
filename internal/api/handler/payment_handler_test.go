package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/api/middleware"
	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

type stubPaymentService struct {
	checkoutURL   string
	checkoutErr   error
	confirmResult *ports.ConfirmResult
	confirmErr    error
	payments      []domain.Payment
	listErr       error
	lastList      ports.ListPaymentsInput
}

func (s *stubPaymentService) BeginCheckout(_ context.Context, _ ports.BeginCheckoutInput) (string, error) {
	return s.checkoutURL, s.checkoutErr
}

func (s *stubPaymentService) Confirm(_ context.Context, _ string) (*ports.ConfirmResult, error) {
	return s.confirmResult, s.confirmErr
}

func (s *stubPaymentService) List(_ context.Context, in ports.ListPaymentsInput) ([]domain.Payment, error) {
	s.lastList = in
	return s.payments, s.listErr
}

func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestConfirm_MissingSessionID(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{})
	c, _ := newHandlerContext(t, http.MethodPost, "/v1/payments/confirm", "")

	err := h.Confirm(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestConfirm_ReplayResponseShape(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{
		confirmResult: &ports.ConfirmResult{
			AlreadyProcessed: true,
			TransactionID:    "pi_100",
			TrackingID:       "PRCL-20260829-A1B2C3",
		},
	})
	c, rec := newHandlerContext(t, http.MethodPost, "/v1/payments/confirm?session_id=cs_1", "")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "already exist" {
		t.Errorf(`message: want "already exist", got %v`, body["message"])
	}
	if body["transactionId"] != "pi_100" {
		t.Errorf("transactionId: got %v", body["transactionId"])
	}
	if body["trackingId"] != "PRCL-20260829-A1B2C3" {
		t.Errorf("trackingId: got %v", body["trackingId"])
	}
}

func TestConfirm_UnsettledResponse(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{
		confirmResult: &ports.ConfirmResult{Success: false, TransactionID: "pi_100"},
	})
	c, rec := newHandlerContext(t, http.MethodPost, "/v1/payments/confirm?session_id=cs_1", "")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success: want false, got %v", body["success"])
	}
	if _, ok := body["modifyParcel"]; ok {
		t.Error("unsettled response must not carry write outcomes")
	}
}

func TestConfirm_SuccessResponseShape(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{
		confirmResult: &ports.ConfirmResult{
			Success:       true,
			TransactionID: "pi_100",
			TrackingID:    "PRCL-20260829-A1B2C3",
			Parcel:        ports.UpdateOutcome{Matched: 1, Modified: 1},
			PaymentRecord: ports.WriteOutcome{Applied: true},
		},
	})
	c, rec := newHandlerContext(t, http.MethodPost, "/v1/payments/confirm?session_id=cs_1", "")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Success       bool   `json:"success"`
		TransactionID string `json:"transactionId"`
		TrackingID    string `json:"trackingId"`
		Parcel        *struct {
			Matched  int64 `json:"matched"`
			Modified int64 `json:"modified"`
		} `json:"modifyParcel"`
		PaymentRecord *struct {
			Applied bool   `json:"applied"`
			Error   string `json:"error,omitempty"`
		} `json:"paymentRecord"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if !body.Success || body.TransactionID != "pi_100" || body.TrackingID != "PRCL-20260829-A1B2C3" {
		t.Errorf("body: %+v", body)
	}
	if body.Parcel == nil || body.Parcel.Matched != 1 {
		t.Errorf("modifyParcel: %+v", body.Parcel)
	}
	if body.PaymentRecord == nil || !body.PaymentRecord.Applied {
		t.Errorf("paymentRecord: %+v", body.PaymentRecord)
	}
}

func TestConfirm_ErrorPropagates(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{confirmErr: domain.ErrSessionNotFound})
	c, _ := newHandlerContext(t, http.MethodPost, "/v1/payments/confirm?session_id=cs_x", "")

	err := h.Confirm(c)
	if err != domain.ErrSessionNotFound {
		t.Fatalf("domain errors must reach the error handler untouched, got %v", err)
	}
}

func TestBeginCheckout_ReturnsURL(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{checkoutURL: "https://checkout.example.com/cs_1"})
	body := `{"parcelId":"parcel_1","parcelName":"books","cost":12.5,"senderEmail":"sender@example.com"}`
	c, rec := newHandlerContext(t, http.MethodPost, "/v1/payments/checkout", body)

	if err := h.BeginCheckout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["url"] != "https://checkout.example.com/cs_1" {
		t.Errorf("url: got %s", resp["url"])
	}
}

func TestBeginCheckout_ValidationFailure(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{})
	body := `{"parcelId":"parcel_1","cost":-3,"senderEmail":"not-an-email"}`
	c, _ := newHandlerContext(t, http.MethodPost, "/v1/payments/checkout", body)

	err := h.BeginCheckout(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestListPayments_PassesVerifiedCaller(t *testing.T) {
	stub := &stubPaymentService{payments: []domain.Payment{{TransactionID: "pi_1", CustomerEmail: "me@example.com"}}}
	h := NewPaymentHandler(stub)
	c, rec := newHandlerContext(t, http.MethodGet, "/v1/payments?email=me@example.com", "")
	c.Set(middleware.ContextEmailKey, "me@example.com")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastList.FilterEmail != "me@example.com" || stub.lastList.CallerEmail != "me@example.com" {
		t.Errorf("service input: %+v", stub.lastList)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp) != 1 || resp[0]["transactionId"] != "pi_1" {
		t.Errorf("body: %+v", resp)
	}
}

func TestListPayments_ForbiddenPropagates(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentService{listErr: domain.ErrForbidden})
	c, _ := newHandlerContext(t, http.MethodGet, "/v1/payments?email=victim@example.com", "")
	c.Set(middleware.ContextEmailKey, "attacker@example.com")

	if err := h.List(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
