package dto

import "time"

// SignupRequest payload for new diner accounts.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login on either partition.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifiedIdentity is the GET /verify payload.
type VerifiedIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"roleTag"`
}
