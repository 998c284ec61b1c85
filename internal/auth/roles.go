package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// RequireRestaurant ensures a restaurant operator is authenticated.
func RequireRestaurant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleRestaurant || principal.Restaurant == nil {
			return fiber.NewError(http.StatusForbidden, "restaurant account required")
		}
		return c.Next()
	}
}

// RequireUser ensures a diner account is authenticated.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleUser || principal.User == nil {
			return fiber.NewError(http.StatusForbidden, "user account required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated, either partition.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
