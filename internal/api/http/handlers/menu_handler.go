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

// MenuHandler exposes standard menu CRUD for the authenticated restaurant.
type MenuHandler struct {
	menu *service.MenuService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(menu *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// List handles GET /dashboard/menu-items.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	items, err := h.menu.ListItems(c.Context(), principal.Restaurant.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Create handles POST /dashboard/menu-items.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.menu.AddItem(c.Context(), principal.Restaurant.ID, menuItemInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// Update handles PUT /dashboard/menu-items/:id.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.menu.UpdateItem(c.Context(), principal.Restaurant.ID, c.Params("id"), menuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// Delete handles DELETE /dashboard/menu-items/:id.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	if err := h.menu.DeleteItem(c.Context(), principal.Restaurant.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func menuItemInput(req dto.MenuItemRequest) service.MenuItemInput {
	return service.MenuItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    domain.MenuCategory(req.Category),
		Quantity:    req.Quantity,
		IsAvailable: req.IsAvailable,
	}
}
