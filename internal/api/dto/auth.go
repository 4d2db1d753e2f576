package dto

import (
	"github.com/gestorly/gestorly/internal/validator"
)

// LoginRequest is a thin pass-through to the external auth service's
// sign-in operation.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// LoginResponse carries the session credential issued by the external
// auth service.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id"`
}
