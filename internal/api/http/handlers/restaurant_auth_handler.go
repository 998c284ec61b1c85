package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/api/dto"
	"github.com/secondplate/restaurant-service/internal/config"
	"github.com/secondplate/restaurant-service/internal/service"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// RestaurantAuthHandler exposes signup/login for operator accounts.
// Signup accepts multipart bodies carrying optional logoImage/mapImage parts.
type RestaurantAuthHandler struct {
	auth      *service.AuthService
	uploadCfg config.UploadConfig
	assetRoot string
}

// NewRestaurantAuthHandler constructs handler. assetRoot is the object-store
// folder prefix for restaurant images.
func NewRestaurantAuthHandler(authService *service.AuthService, uploadCfg config.UploadConfig, assetRoot string) *RestaurantAuthHandler {
	return &RestaurantAuthHandler{auth: authService, uploadCfg: uploadCfg, assetRoot: assetRoot}
}

// Signup handles POST /auth/restaurant/signup.
func (h *RestaurantAuthHandler) Signup(c *fiber.Ctx) error {
	var form dto.RestaurantSignupForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.ValidateSignup(form.Name, form.Email, form.Password); err != nil {
		return err
	}
	if form.Address == "" || form.Phone == "" {
		return apperrors.NewValidationError("address and phone required", nil)
	}

	folder := fmt.Sprintf("%s/%s", h.assetRoot, form.Email)
	uploads, err := collectImageUploads(c, h.uploadCfg.TempDir, h.uploadCfg.MaxFileBytes, folder)
	if err != nil {
		return err
	}

	_, err = h.auth.SignupRestaurant(c.Context(), service.RestaurantSignupInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Address:  form.Address,
		Phone:    form.Phone,
		Uploads:  uploads,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "restaurant registered successfully",
	})
}

// Login handles POST /auth/restaurant/login.
func (h *RestaurantAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.ValidateLogin(req.Email, req.Password); err != nil {
		return err
	}

	restaurant, token, exp, err := h.auth.LoginRestaurant(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"id":      restaurant.ID,
		"email":   restaurant.Email,
		"name":    restaurant.Name,
	})
}
