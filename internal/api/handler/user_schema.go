package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type registerUserResponse struct {
	Message string        `json:"message,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user rider admin"`
}

type updateOutcomeResponse struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}
