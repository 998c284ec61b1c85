package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/service"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// state values round-tripped through the provider to pick the partition.
const (
	oauthStateUser       = "user"
	oauthStateRestaurant = "restaurant"
)

// OAuthHandler drives the Google federated login flow for both partitions.
type OAuthHandler struct {
	provider    auth.IdentityProvider
	auth        *service.AuthService
	frontendURL string
	logger      *zap.Logger
}

// NewOAuthHandler constructs handler. provider may be nil when Google login
// is not configured; the routes then answer 404.
func NewOAuthHandler(provider auth.IdentityProvider, authService *service.AuthService, frontendURL string, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{provider: provider, auth: authService, frontendURL: frontendURL, logger: logger}
}

// RedirectUser handles GET /auth/google.
func (h *OAuthHandler) RedirectUser(c *fiber.Ctx) error {
	return h.redirect(c, oauthStateUser)
}

// RedirectRestaurant handles GET /auth/restaurant/google.
func (h *OAuthHandler) RedirectRestaurant(c *fiber.Ctx) error {
	return h.redirect(c, oauthStateRestaurant)
}

// CallbackUser handles GET /auth/google/callback.
func (h *OAuthHandler) CallbackUser(c *fiber.Ctx) error {
	return h.callback(c, domain.RoleUser)
}

// CallbackRestaurant handles GET /auth/restaurant/google/callback.
func (h *OAuthHandler) CallbackRestaurant(c *fiber.Ctx) error {
	return h.callback(c, domain.RoleRestaurant)
}

func (h *OAuthHandler) redirect(c *fiber.Ctx, state string) error {
	if h.provider == nil {
		return apperrors.NewNotFound("federated login", nil)
	}
	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

func (h *OAuthHandler) callback(c *fiber.Ctx, role domain.RoleTag) error {
	if h.provider == nil {
		return apperrors.NewNotFound("federated login", nil)
	}

	code := c.Query("code")
	if code == "" {
		return apperrors.NewValidationError("missing authorization code", nil)
	}

	profile, err := h.provider.Exchange(c.Context(), code)
	if err != nil {
		h.logger.Warn("federated exchange failed", zap.Error(err))
		return apperrors.NewUnauthorized("federated login failed")
	}

	name, token, _, err := h.auth.FederatedLogin(c.Context(), role, profile)
	if err != nil {
		return err
	}

	dest := fmt.Sprintf("%s/oauth-callback?token=%s&name=%s",
		h.frontendURL, url.QueryEscape(token), url.QueryEscape(name))
	if role == domain.RoleRestaurant {
		dest += "&isRestaurant=true"
	}
	return c.Redirect(dest, fiber.StatusFound)
}
