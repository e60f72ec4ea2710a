package dto

import "time"

// IssueTokenRequest datos para emitir un token de operador.
type IssueTokenRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=admin cashier viewer"`
	ExpMinutes int    `json:"exp_minutes" validate:"min=0"`
}

// TokenResponse token emitido.
type TokenResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
