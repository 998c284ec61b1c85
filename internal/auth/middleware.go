package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/repository"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Exactly one of User and
// Restaurant is set, matching Role.
type Principal struct {
	Role       domain.RoleTag
	User       *domain.User
	Restaurant *domain.Restaurant
}

// DisplayName returns the caller's name regardless of partition.
func (p *Principal) DisplayName() string {
	switch p.Role {
	case domain.RoleRestaurant:
		if p.Restaurant != nil {
			return p.Restaurant.Name
		}
	case domain.RoleUser:
		if p.User != nil {
			return p.User.Name
		}
	}
	return ""
}

// Email returns the caller's email regardless of partition.
func (p *Principal) Email() string {
	switch p.Role {
	case domain.RoleRestaurant:
		if p.Restaurant != nil {
			return p.Restaurant.Email
		}
	case domain.RoleUser:
		if p.User != nil {
			return p.User.Email
		}
	}
	return ""
}

// AuthMiddleware validates bearer tokens and resolves principals against the
// partition named by the token's role tag. It reads the credential store but
// never writes to it.
type AuthMiddleware struct {
	tokens      *TokenManager
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, restaurants repository.RestaurantRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, restaurants: restaurants}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewTokenMissing()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewTokenMissing()
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenExpired()
		}
		return apperrors.NewTokenInvalid()
	}

	principal := &Principal{Role: claims.Role}

	switch claims.Role {
	case domain.RoleUser:
		user, err := m.users.GetByID(c.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewPrincipalNotFound()
			}
			return apperrors.MapError(err)
		}
		if user.Email != claims.Email {
			return apperrors.NewPrincipalNotFound()
		}
		principal.User = user
	case domain.RoleRestaurant:
		restaurant, err := m.restaurants.GetByID(c.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewPrincipalNotFound()
			}
			return apperrors.MapError(err)
		}
		if restaurant.Email != claims.Email {
			return apperrors.NewPrincipalNotFound()
		}
		principal.Restaurant = restaurant
	default:
		return apperrors.NewTokenInvalid()
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
