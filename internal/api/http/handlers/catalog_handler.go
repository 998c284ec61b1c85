package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/service"
)

// CatalogHandler serves the public restaurant directory.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /restaurants.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	listings, err := h.catalog.ListRestaurants(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// GetMenu handles GET /restaurants/:restaurantId/menu.
func (h *CatalogHandler) GetMenu(c *fiber.Ctx) error {
	menu, err := h.catalog.GetMenu(c.Context(), c.Params("restaurantId"))
	if err != nil {
		return err
	}
	return c.JSON(menu)
}
