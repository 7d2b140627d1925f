package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapshift/parcel-system/internal/api/metrics"
	"github.com/zapshift/parcel-system/internal/api/middleware"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

// PaymentHandler handles checkout and payment reconciliation requests.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// BeginCheckout handles POST /v1/payments/checkout. Opens an external
// checkout session and returns the redirect URL.
//
// @Summary      Begin checkout for a parcel
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      beginCheckoutRequest  true  "Checkout details"
// @Success      200   {object}  beginCheckoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/payments/checkout [post]
func (h *PaymentHandler) BeginCheckout(c echo.Context) error {
	var req beginCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.service.BeginCheckout(c.Request().Context(), ports.BeginCheckoutInput{
		ParcelID:    req.ParcelID,
		ParcelName:  req.ParcelName,
		Cost:        req.Cost,
		SenderEmail: req.SenderEmail,
	})
	if err != nil {
		return err
	}

	metrics.CheckoutSessionsTotal.Inc()
	return c.JSON(http.StatusOK, beginCheckoutResponse{URL: url})
}

// Confirm handles POST /v1/payments/confirm?session_id=... and reconciles a
// completed checkout. The session reference itself is the capability; no
// auth gate applies. Safe to call repeatedly.
//
// @Summary      Confirm a checkout session
// @Tags         payments
// @Produce      json
// @Param        session_id  query     string  true  "Checkout session reference"
// @Success      200         {object}  confirmResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      502         {object}  errorResponse
// @Router       /v1/payments/confirm [post]
func (h *PaymentHandler) Confirm(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	result, err := h.service.Confirm(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	if result.AlreadyProcessed {
		metrics.PaymentsConfirmedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, confirmReplayResponse{
			Message:       "already exist",
			TransactionID: result.TransactionID,
			TrackingID:    result.TrackingID,
		})
	}

	if !result.Success {
		metrics.PaymentsConfirmedTotal.WithLabelValues("unsettled").Inc()
		return c.JSON(http.StatusOK, confirmResponse{Success: false})
	}

	record := writeOutcomeResponse{Applied: result.PaymentRecord.Applied, Error: result.PaymentRecord.Error}
	if record.Applied {
		metrics.PaymentsConfirmedTotal.WithLabelValues("confirmed").Inc()
	} else {
		metrics.PaymentsConfirmedTotal.WithLabelValues("partial").Inc()
	}

	return c.JSON(http.StatusOK, confirmResponse{
		Success:       true,
		TransactionID: result.TransactionID,
		TrackingID:    result.TrackingID,
		Parcel:        &updateOutcomeResponse{Matched: result.Parcel.Matched, Modified: result.Parcel.Modified},
		PaymentRecord: &record,
	})
}

// List handles GET /v1/payments?email=..., payment history newest first.
// Filtering by an email other than the verified caller's is forbidden.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Filter by customer email (must match caller)"
// @Success      200    {array}   paymentResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.service.List(c.Request().Context(), ports.ListPaymentsInput{
		FilterEmail: c.QueryParam("email"),
		CallerEmail: middleware.VerifiedEmail(c),
	})
	if err != nil {
		return err
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse{
			TransactionID: p.TransactionID,
			ParcelID:      p.ParcelID,
			ParcelName:    p.ParcelName,
			Amount:        p.Amount,
			Currency:      p.Currency,
			CustomerEmail: p.CustomerEmail,
			PaymentStatus: p.PaymentStatus,
			TrackingID:    p.TrackingID,
			PaidAt:        p.PaidAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
