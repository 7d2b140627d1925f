package domain

import (
	"errors"
	"time"
)

// PaymentState is the payment lifecycle of a parcel. A parcel moves from
// unpaid to paid exactly once, exclusively through payment reconciliation.
type PaymentState string

const (
	ParcelUnpaid PaymentState = "unpaid"
	ParcelPaid   PaymentState = "paid"
)

var ErrParcelNotFound = errors.New("parcel not found")

// Parcel is a delivery order. TrackingID stays empty until the parcel is
// paid; it is assigned by the reconciler together with the paid state.
type Parcel struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	SenderEmail   string       `json:"sender_email"`
	Cost          float64      `json:"cost"`
	PaymentStatus PaymentState `json:"payment_status"`
	TrackingID    string       `json:"tracking_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
