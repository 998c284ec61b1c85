package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/secondplate/restaurant-service/internal/api/http/handlers"
	"github.com/secondplate/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	RestaurantAuth *handlers.RestaurantAuthHandler
	OAuth          *handlers.OAuthHandler
	Dashboard      *handlers.DashboardHandler
	Menu           *handlers.MenuHandler
	Combo          *handlers.ComboHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/restaurant/signup", cfg.RestaurantAuth.Signup)
	authGroup.Post("/restaurant/login", cfg.RestaurantAuth.Login)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)

	authGroup.Get("/google", cfg.OAuth.RedirectUser)
	authGroup.Get("/google/callback", cfg.OAuth.CallbackUser)
	authGroup.Get("/restaurant/google", cfg.OAuth.RedirectRestaurant)
	authGroup.Get("/restaurant/google/callback", cfg.OAuth.CallbackRestaurant)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireRestaurant())
	dashboard.Get("/restaurant/profile", cfg.Dashboard.GetProfile)
	dashboard.Post("/restaurant/profile", cfg.Dashboard.UpdateProfile)
	dashboard.Put("/restaurant/status", cfg.Dashboard.UpdateStatus)

	dashboard.Get("/menu-items", cfg.Menu.List)
	dashboard.Post("/menu-items", cfg.Menu.Create)
	dashboard.Put("/menu-items/:id", cfg.Menu.Update)
	dashboard.Delete("/menu-items/:id", cfg.Menu.Delete)

	dashboard.Get("/combo-menu", cfg.Combo.GetMenu)
	dashboard.Post("/combo-menu/combo", cfg.Combo.CreateCombo)
	dashboard.Put("/combo-menu/combo/:id", cfg.Combo.UpdateCombo)
	dashboard.Delete("/combo-menu/combo/:id", cfg.Combo.DeleteCombo)
	dashboard.Post("/combo-menu/protein", cfg.Combo.CreateProtein)
	dashboard.Delete("/combo-menu/protein/:id", cfg.Combo.DeleteProtein)
	dashboard.Post("/combo-menu/side", cfg.Combo.CreateSide)
	dashboard.Delete("/combo-menu/side/:id", cfg.Combo.DeleteSide)

	app.Get("/restaurants", cfg.Catalog.List)
	app.Get("/restaurants/:restaurantId/menu", cfg.Catalog.GetMenu)
}
