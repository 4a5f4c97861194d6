package dto

import "time"

type AdminVerifyRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminSessionResponse struct {
	IsAdmin   bool       `json:"isAdmin"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
