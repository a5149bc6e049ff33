package dto

import "masseurmatch_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	UserID      string          `json:"user_id"`
	Role        models.UserRole `json:"role"`
}

// IdentityWebhookRequest is the normalized identity-verification callback.
type IdentityWebhookRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Verified bool   `json:"verified"`
}
