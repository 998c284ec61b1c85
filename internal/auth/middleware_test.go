package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/domain"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

const gateSecret = "gate-test-secret"

// fakeUserRepo serves GetByID from a map; the write methods are unused here.
type fakeUserRepo struct {
	byID map[string]*domain.User
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return errors.New("not wired") }
func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return errors.New("not wired") }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type fakeRestaurantRepo struct {
	byID map[string]*domain.Restaurant
}

func (f *fakeRestaurantRepo) Create(context.Context, *domain.Restaurant) error {
	return errors.New("not wired")
}
func (f *fakeRestaurantRepo) Update(context.Context, *domain.Restaurant) error {
	return errors.New("not wired")
}
func (f *fakeRestaurantRepo) GetByEmail(context.Context, string) (*domain.Restaurant, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeRestaurantRepo) List(context.Context) ([]domain.Restaurant, error) { return nil, nil }
func (f *fakeRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

type gateFixture struct {
	app    *fiber.App
	tokens *auth.TokenManager
}

// newGateFixture builds a minimal app with the auth gate in front of a probe
// route that echoes the resolved principal.
func newGateFixture(t *testing.T, users *fakeUserRepo, restaurants *fakeRestaurantRepo) *gateFixture {
	t.Helper()

	tokens := auth.NewTokenManager(gateSecret)
	gate := auth.NewAuthMiddleware(tokens, users, restaurants)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) {
				return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
					"code": domainErr.Code,
				})
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"code": "REQUEST_FAILED"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"code": "INTERNAL_ERROR"})
		},
	})
	app.Get("/whoami", gate.Handle, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{
			"role":  principal.Role,
			"name":  principal.DisplayName(),
			"email": principal.Email(),
		})
	})
	app.Get("/operator-only", gate.Handle, auth.RequireRestaurant(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	return &gateFixture{app: app, tokens: tokens}
}

func (fx *gateFixture) get(t *testing.T, path, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := fx.app.Test(req)
	require.NoError(t, err)

	body := map[string]any{}
	if resp.ContentLength != 0 {
		_ = json.NewDecoder(resp.Body).Decode(&body)
	}
	resp.Body.Close()
	return resp, body
}

func TestGateMissingHeader(t *testing.T) {
	fx := newGateFixture(t, &fakeUserRepo{}, &fakeRestaurantRepo{})

	for _, header := range []string{"", "Basic abc", "Bearer", "token-without-scheme"} {
		resp, body := fx.get(t, "/whoami", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Equal(t, "TOKEN_MISSING", body["code"], "header %q", header)
	}
}

func TestGateInvalidSignature(t *testing.T) {
	fx := newGateFixture(t, &fakeUserRepo{}, &fakeRestaurantRepo{})

	forged, _, err := auth.NewTokenManager("some-other-secret").Issue("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_INVALID", body["code"])
}

func TestGateResolvesUserPrincipal(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ada", Email: "a@x.com"},
	}}
	fx := newGateFixture(t, users, &fakeRestaurantRepo{})

	token, _, err := fx.tokens.Issue("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "a@x.com", body["email"])
}

func TestGateResolvesRestaurantPrincipal(t *testing.T) {
	restaurants := &fakeRestaurantRepo{byID: map[string]*domain.Restaurant{
		"r1": {ID: "r1", Name: "Trattoria", Email: "r@x.com"},
	}}
	fx := newGateFixture(t, &fakeUserRepo{}, restaurants)

	token, _, err := fx.tokens.Issue("r1", "r@x.com", domain.RoleRestaurant)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "restaurant", body["role"])
	assert.Equal(t, "Trattoria", body["name"])
}

func TestGatePrincipalDeletedAfterIssue(t *testing.T) {
	fx := newGateFixture(t, &fakeUserRepo{}, &fakeRestaurantRepo{})

	token, _, err := fx.tokens.Issue("gone", "gone@x.com", domain.RoleUser)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "PRINCIPAL_NOT_FOUND", body["code"])
}

func TestGateEmailMismatchRejected(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ada", Email: "changed@x.com"},
	}}
	fx := newGateFixture(t, users, &fakeRestaurantRepo{})

	token, _, err := fx.tokens.Issue("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "PRINCIPAL_NOT_FOUND", body["code"])
}

// A restaurant token never resolves against the user partition even when a
// user row shares the same id.
func TestGatePartitionsDoNotCross(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"p1": {ID: "p1", Name: "Ada", Email: "a@x.com"},
	}}
	fx := newGateFixture(t, users, &fakeRestaurantRepo{})

	token, _, err := fx.tokens.Issue("p1", "a@x.com", domain.RoleRestaurant)
	require.NoError(t, err)

	resp, body := fx.get(t, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "PRINCIPAL_NOT_FOUND", body["code"])
}

func TestRequireRestaurantRejectsUserToken(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ada", Email: "a@x.com"},
	}}
	fx := newGateFixture(t, users, &fakeRestaurantRepo{})

	token, _, err := fx.tokens.Issue("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	resp, _ := fx.get(t, "/operator-only", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
