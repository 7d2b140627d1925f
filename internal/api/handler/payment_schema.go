package handler

import "time"

type beginCheckoutRequest struct {
	ParcelID    string  `json:"parcelId"    validate:"required"`
	ParcelName  string  `json:"parcelName"  validate:"required"`
	Cost        float64 `json:"cost"        validate:"required,gt=0"`
	SenderEmail string  `json:"senderEmail" validate:"required,email"`
}

type beginCheckoutResponse struct {
	URL string `json:"url"`
}

// Payment endpoints keep the camelCase wire contract of the original public
// API; the dashboard client depends on these exact keys.

type confirmReplayResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	TrackingID    string `json:"trackingId"`
}

type confirmResponse struct {
	Success       bool                   `json:"success"`
	TransactionID string                 `json:"transactionId,omitempty"`
	TrackingID    string                 `json:"trackingId,omitempty"`
	Parcel        *updateOutcomeResponse `json:"modifyParcel,omitempty"`
	PaymentRecord *writeOutcomeResponse  `json:"paymentRecord,omitempty"`
}

type paymentResponse struct {
	TransactionID string    `json:"transactionId"`
	ParcelID      string    `json:"parcelId"`
	ParcelName    string    `json:"parcelName,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	PaymentStatus string    `json:"paymentStatus"`
	TrackingID    string    `json:"trackingId"`
	PaidAt        time.Time `json:"paidAt"`
}
