package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/api/dto"
	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/service"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// AuthHandler exposes signup/login for diner accounts plus token
// verification for both partitions.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.ValidateSignup(req.Name, req.Email, req.Password); err != nil {
		return err
	}

	if _, err := h.auth.SignupUser(c.Context(), req.Name, req.Email, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "signup successful",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.ValidateLogin(req.Email, req.Password); err != nil {
		return err
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"email":   user.Email,
		"name":    user.Name,
	})
}

// Verify handles GET /auth/verify behind the authentication gate.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewTokenMissing()
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"user": dto.VerifiedIdentity{
			Email: principal.Email(),
			Name:  principal.DisplayName(),
			Role:  string(principal.Role),
		},
	})
}
