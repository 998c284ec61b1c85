package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/api/dto"
	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/config"
	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/service"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// DashboardHandler exposes operator self-service endpoints. All routes sit
// behind the authentication gate with the restaurant role required.
type DashboardHandler struct {
	dashboard *service.DashboardService
	catalog   *service.CatalogService
	uploadCfg config.UploadConfig
	assetRoot string
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, catalog *service.CatalogService, uploadCfg config.UploadConfig, assetRoot string) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, catalog: catalog, uploadCfg: uploadCfg, assetRoot: assetRoot}
}

// GetProfile handles GET /dashboard/restaurant/profile.
func (h *DashboardHandler) GetProfile(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	restaurant, err := h.dashboard.GetProfile(c.Context(), principal.Restaurant.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRestaurantProfileResponse(restaurant)})
}

// UpdateProfile handles POST /dashboard/restaurant/profile. Accepts
// multipart bodies that may replace logoImage/mapImage.
func (h *DashboardHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var form dto.RestaurantProfileForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	folder := fmt.Sprintf("%s/%s", h.assetRoot, principal.Restaurant.Email)
	uploads, err := collectImageUploads(c, h.uploadCfg.TempDir, h.uploadCfg.MaxFileBytes, folder)
	if err != nil {
		return err
	}

	input := service.ProfileUpdateInput{
		Name:      form.Name,
		Address:   form.Address,
		Phone:     form.Phone,
		OpenTime:  form.OpenTime,
		CloseTime: form.CloseTime,
		IsOpen:    form.IsOpen,
		Uploads:   uploads,
	}
	if form.MenuType != nil {
		menuType := domain.MenuType(*form.MenuType)
		input.MenuType = &menuType
	}

	restaurant, err := h.dashboard.UpdateProfile(c.Context(), principal.Restaurant.ID, input)
	if err != nil {
		return err
	}

	h.catalog.InvalidateListing(c.Context())
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRestaurantProfileResponse(restaurant)})
}

// UpdateStatus handles PUT /dashboard/restaurant/status.
func (h *DashboardHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.RestaurantStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.dashboard.UpdateStatus(c.Context(), principal.Restaurant.ID, service.StatusUpdateInput{
		IsOpen:    req.IsOpen,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
	})
	if err != nil {
		return err
	}

	h.catalog.InvalidateListing(c.Context())
	return c.JSON(fiber.Map{"success": true, "data": dto.NewRestaurantProfileResponse(restaurant)})
}
