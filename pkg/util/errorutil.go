package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewDuplicatePrincipal reports a signup against an email already registered
// in the same partition.
func NewDuplicatePrincipal(message string) error {
	return NewDomainError("DUPLICATE_PRINCIPAL", message, http.StatusConflict, nil)
}

// NewInvalidCredentials reports a failed password login. The message is the
// same whether the email or the password was wrong.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusForbidden, nil)
}

func NewTokenMissing() error {
	return NewDomainError("TOKEN_MISSING", "no token provided", http.StatusUnauthorized, nil)
}

func NewTokenInvalid() error {
	return NewDomainError("TOKEN_INVALID", "authentication failed", http.StatusUnauthorized, nil)
}

func NewTokenExpired() error {
	return NewDomainError("TOKEN_EXPIRED", "token expired", http.StatusUnauthorized, nil)
}

func NewPrincipalNotFound() error {
	return NewDomainError("PRINCIPAL_NOT_FOUND", "principal not found", http.StatusUnauthorized, nil)
}

// NewUploadFailed wraps the triggering put failure after rollback has been
// attempted. kind names the asset whose upload failed first.
func NewUploadFailed(kind string, err error) error {
	return &DomainError{
		Code:       "UPLOAD_FAILED",
		Message:    fmt.Sprintf("upload of %s failed", kind),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"asset": kind},
		Err:        err,
	}
}

func NewFileTooLarge(field string, limitBytes int64) error {
	return NewDomainError("FILE_TOO_LARGE",
		fmt.Sprintf("%s exceeds the maximum file size", field),
		http.StatusRequestEntityTooLarge,
		map[string]any{"field": field, "limit_bytes": limitBytes})
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
