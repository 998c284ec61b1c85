package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/api/dto"
	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/service"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// ComboHandler exposes combo menu CRUD for the authenticated restaurant.
type ComboHandler struct {
	combos *service.ComboService
}

// NewComboHandler constructs handler.
func NewComboHandler(combos *service.ComboService) *ComboHandler {
	return &ComboHandler{combos: combos}
}

// GetMenu handles GET /dashboard/combo-menu.
func (h *ComboHandler) GetMenu(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	menu, err := h.combos.GetMenu(c.Context(), principal.Restaurant.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": menu})
}

// CreateCombo handles POST /dashboard/combo-menu/combo.
func (h *ComboHandler) CreateCombo(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ComboRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	combo, err := h.combos.AddCombo(c.Context(), principal.Restaurant.ID, comboInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": combo})
}

// UpdateCombo handles PUT /dashboard/combo-menu/combo/:id.
func (h *ComboHandler) UpdateCombo(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ComboRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	combo, err := h.combos.UpdateCombo(c.Context(), principal.Restaurant.ID, c.Params("id"), comboInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": combo})
}

// DeleteCombo handles DELETE /dashboard/combo-menu/combo/:id.
func (h *ComboHandler) DeleteCombo(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.combos.DeleteCombo(c.Context(), principal.Restaurant.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// CreateProtein handles POST /dashboard/combo-menu/protein.
func (h *ComboHandler) CreateProtein(c *fiber.Ctx) error {
	return h.createOption(c, domain.ComboOptionProtein)
}

// DeleteProtein handles DELETE /dashboard/combo-menu/protein/:id.
func (h *ComboHandler) DeleteProtein(c *fiber.Ctx) error {
	return h.deleteOption(c, domain.ComboOptionProtein)
}

// CreateSide handles POST /dashboard/combo-menu/side.
func (h *ComboHandler) CreateSide(c *fiber.Ctx) error {
	return h.createOption(c, domain.ComboOptionSide)
}

// DeleteSide handles DELETE /dashboard/combo-menu/side/:id.
func (h *ComboHandler) DeleteSide(c *fiber.Ctx) error {
	return h.deleteOption(c, domain.ComboOptionSide)
}

func (h *ComboHandler) createOption(c *fiber.Ctx, group domain.ComboOptionGroup) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ComboOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	option, err := h.combos.AddOption(c.Context(), principal.Restaurant.ID, group, req.Name, req.IsAvailable)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": option})
}

func (h *ComboHandler) deleteOption(c *fiber.Ctx, group domain.ComboOptionGroup) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.combos.DeleteOption(c.Context(), principal.Restaurant.ID, group, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func comboInput(req dto.ComboRequest) service.ComboInput {
	return service.ComboInput{
		Name:          req.Name,
		Description:   req.Description,
		OriginalPrice: req.OriginalPrice,
		SalePrice:     req.SalePrice,
	}
}
