package handler

import "time"

type createParcelRequest struct {
	Title       string  `json:"title"        validate:"required"`
	SenderEmail string  `json:"sender_email" validate:"required,email"`
	Cost        float64 `json:"cost"         validate:"required,gt=0"`
}

type parcelResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SenderEmail   string    `json:"sender_email"`
	Cost          float64   `json:"cost"`
	PaymentStatus string    `json:"payment_status"`
	TrackingID    string    `json:"tracking_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type deleteParcelResponse struct {
	Deleted int64 `json:"deleted"`
}
