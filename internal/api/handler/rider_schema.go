package handler

import "time"

type applyRiderRequest struct {
	Name             string `json:"name"  validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	District         string `json:"district"`
	BikeRegistration string `json:"bike_registration"`
}

type riderResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	District         string    `json:"district,omitempty"`
	BikeRegistration string    `json:"bike_registration,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type setRiderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	// Email links the rider application to the promoted user account.
	Email string `json:"email" validate:"required,email"`
}

type writeOutcomeResponse struct {
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

type setRiderStatusResponse struct {
	Rider updateOutcomeResponse `json:"rider"`
	// RolePromotion is present only on approval; a failed promotion is
	// reported here so the admin can re-issue the approval.
	RolePromotion *writeOutcomeResponse `json:"role_promotion,omitempty"`
}
