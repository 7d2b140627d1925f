package domain

import (
	"errors"
	"time"
)

var ErrPaymentNotFound = errors.New("payment not found")
var ErrPaymentExists = errors.New("payment already recorded")
var ErrSessionNotFound = errors.New("checkout session not found")
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")

// Payment is the durable record of one settled checkout session.
// TransactionID carries a unique index: it is the idempotency anchor that
// makes reconciliation safe under retries and duplicate callbacks.
type Payment struct {
	TransactionID string    `json:"transaction_id"`
	ParcelID      string    `json:"parcel_id"`
	ParcelName    string    `json:"parcel_name,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customer_email"`
	PaymentStatus string    `json:"payment_status"`
	TrackingID    string    `json:"tracking_id"`
	PaidAt        time.Time `json:"paid_at"`
}
