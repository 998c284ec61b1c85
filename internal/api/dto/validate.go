package dto

import (
	"net/mail"

	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// Field length bounds shared with the frontend forms.
const (
	minNameLen     = 3
	maxNameLen     = 100
	minPasswordLen = 8
	maxPasswordLen = 15
	minLoginPwLen  = 4
)

// ValidateSignup checks a diner or restaurant signup payload.
func ValidateSignup(name, email, password string) error {
	if len(name) < minNameLen || len(name) > maxNameLen {
		return apperrors.NewValidationError("name must be 3-100 characters", map[string]any{"field": "name"})
	}
	if !validEmail(email) {
		return apperrors.NewValidationError("invalid email format", map[string]any{"field": "email"})
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return apperrors.NewValidationError("password must be 8-15 characters", map[string]any{"field": "password"})
	}
	return nil
}

// ValidateLogin checks a login payload.
func ValidateLogin(email, password string) error {
	if !validEmail(email) {
		return apperrors.NewValidationError("invalid email format", map[string]any{"field": "email"})
	}
	if len(password) < minLoginPwLen {
		return apperrors.NewValidationError("password required", map[string]any{"field": "password"})
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
