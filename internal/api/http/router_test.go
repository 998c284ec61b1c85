package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/secondplate/restaurant-service/internal/api/http"
	"github.com/secondplate/restaurant-service/internal/api/http/handlers"
	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/config"
	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/observability"
	"github.com/secondplate/restaurant-service/internal/service"
	"github.com/secondplate/restaurant-service/internal/storage"
	"github.com/secondplate/restaurant-service/internal/upload"
)

// In-memory doubles for the persistence and storage layers. Each test gets a
// fresh application wired exactly like cmd/api does it, minus the real
// backends.

type memUsers struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.User
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memRestaurants struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Restaurant
}

func (m *memRestaurants) Create(_ context.Context, restaurant *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	restaurant.ID = fmt.Sprintf("restaurant-%d", m.seq)
	stored := *restaurant
	m.byID[restaurant.ID] = &stored
	return nil
}

func (m *memRestaurants) Update(_ context.Context, restaurant *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[restaurant.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *restaurant
	m.byID[restaurant.ID] = &stored
	return nil
}

func (m *memRestaurants) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byID[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRestaurants) GetByEmail(_ context.Context, email string) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.Email == email {
			copied := *r
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memRestaurants) List(_ context.Context) ([]domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, *r)
	}
	return out, nil
}

type memMenuItems struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.MenuItem
}

func (m *memMenuItems) Create(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	item.ID = fmt.Sprintf("item-%d", m.seq)
	stored := *item
	m.byID[item.ID] = &stored
	return nil
}

func (m *memMenuItems) Update(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return pgx.ErrNoRows
	}
	stored := *item
	m.byID[item.ID] = &stored
	return nil
}

func (m *memMenuItems) Delete(_ context.Context, restaurantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.RestaurantID != restaurantID {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memMenuItems) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.byID[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memMenuItems) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MenuItem
	for _, item := range m.byID {
		if item.RestaurantID == restaurantID {
			out = append(out, *item)
		}
	}
	return out, nil
}

type memCombos struct {
	mu      sync.Mutex
	seq     int
	combos  map[string]*domain.Combo
	options map[string]*domain.ComboOption
}

func newMemCombos() *memCombos {
	return &memCombos{combos: map[string]*domain.Combo{}, options: map[string]*domain.ComboOption{}}
}

func (m *memCombos) CreateCombo(_ context.Context, combo *domain.Combo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	combo.ID = fmt.Sprintf("combo-%d", m.seq)
	stored := *combo
	m.combos[combo.ID] = &stored
	return nil
}

func (m *memCombos) UpdateCombo(_ context.Context, combo *domain.Combo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.combos[combo.ID]
	if !ok || existing.RestaurantID != combo.RestaurantID {
		return pgx.ErrNoRows
	}
	stored := *combo
	m.combos[combo.ID] = &stored
	return nil
}

func (m *memCombos) DeleteCombo(_ context.Context, restaurantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.combos[id]
	if !ok || existing.RestaurantID != restaurantID {
		return pgx.ErrNoRows
	}
	delete(m.combos, id)
	return nil
}

func (m *memCombos) ListCombos(_ context.Context, restaurantID string) ([]domain.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Combo
	for _, combo := range m.combos {
		if combo.RestaurantID == restaurantID {
			out = append(out, *combo)
		}
	}
	return out, nil
}

func (m *memCombos) CreateOption(_ context.Context, option *domain.ComboOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	option.ID = fmt.Sprintf("option-%d", m.seq)
	stored := *option
	m.options[option.ID] = &stored
	return nil
}

func (m *memCombos) DeleteOption(_ context.Context, restaurantID string, group domain.ComboOptionGroup, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.options[id]
	if !ok || existing.RestaurantID != restaurantID || existing.Group != group {
		return pgx.ErrNoRows
	}
	delete(m.options, id)
	return nil
}

func (m *memCombos) ListOptions(_ context.Context, restaurantID string, group domain.ComboOptionGroup) ([]domain.ComboOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ComboOption
	for _, option := range m.options {
		if option.RestaurantID == restaurantID && option.Group == group {
			out = append(out, *option)
		}
	}
	return out, nil
}

type recordingStore struct {
	mu      sync.Mutex
	puts    []storage.PutRequest
	deletes []string
}

func (s *recordingStore) Put(_ context.Context, req storage.PutRequest) (*storage.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, req)
	remoteID := req.Folder + "/" + req.Name
	return &storage.StoredObject{RemoteID: remoteID, URL: "https://cdn.test/" + remoteID}, nil
}

func (s *recordingStore) Delete(_ context.Context, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, remoteID)
	return nil
}

type appFixture struct {
	app         *fiber.App
	store       *recordingStore
	users       *memUsers
	restaurants *memRestaurants
}

func newAppFixture(t *testing.T, maxFileBytes int64) *appFixture {
	t.Helper()

	cfg := config.Config{
		Auth:   config.AuthConfig{JWTSecret: "router-test-secret", BcryptCost: 4},
		Upload: config.UploadConfig{MaxFileBytes: maxFileBytes, TempDir: t.TempDir()},
	}

	users := &memUsers{byID: map[string]*domain.User{}}
	restaurants := &memRestaurants{byID: map[string]*domain.Restaurant{}}
	menuItems := &memMenuItems{byID: map[string]*domain.MenuItem{}}
	combos := newMemCombos()
	store := &recordingStore{}
	logger := zap.NewNop()

	uploader := upload.NewOrchestrator(store, logger, 0)
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:       users,
		RestaurantRepo: restaurants,
		Uploader:       uploader,
	}, logger)
	comboService := service.NewComboService(combos)
	menuService := service.NewMenuService(menuItems)
	dashboardService := service.NewDashboardService(restaurants, uploader, logger)
	catalogService := service.NewCatalogService(restaurants, menuItems, comboService, nil, logger)

	gate := auth.NewAuthMiddleware(authService.TokenManager(), users, restaurants)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler("restaurant-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		RestaurantAuth: handlers.NewRestaurantAuthHandler(authService, cfg.Upload, "restaurants"),
		OAuth:          handlers.NewOAuthHandler(nil, authService, "http://frontend.test", logger),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, catalogService, cfg.Upload, "restaurants"),
		Menu:           handlers.NewMenuHandler(menuService),
		Combo:          handlers.NewComboHandler(comboService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: gate,
	})

	return &appFixture{app: app, store: store, users: users, restaurants: restaurants}
}

func (fx *appFixture) postJSON(t *testing.T, path string, payload any) (*nethttp.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return fx.do(t, req)
}

func (fx *appFixture) do(t *testing.T, req *nethttp.Request) (*nethttp.Response, map[string]any) {
	t.Helper()
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}
	return resp, body
}

func errorCode(body map[string]any) string {
	if errObj, ok := body["error"].(map[string]any); ok {
		code, _ := errObj["code"].(string)
		return code
	}
	return ""
}

// multipartForm builds a multipart body from plain fields plus named file
// parts with bodies of the given sizes.
func multipartForm(t *testing.T, fields map[string]string, files map[string]int) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, size := range files {
		part, err := writer.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xAB}, size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUserSignupLoginVerifyFlow(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	signup := map[string]string{"name": "Ada", "email": "a@x.com", "password": "password1"}

	resp, body := fx.postJSON(t, "/auth/signup", signup)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = fx.postJSON(t, "/auth/signup", signup)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_PRINCIPAL", errorCode(body))

	resp, body = fx.postJSON(t, "/auth/login", map[string]string{"email": "a@x.com", "password": "wrong-pass"})
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(body))

	resp, body = fx.postJSON(t, "/auth/login", map[string]string{"email": "a@x.com", "password": "password1"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "Ada", body["name"])

	authBody, ok := body["auth"].(map[string]any)
	require.True(t, ok)
	token, _ := authBody["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(nethttp.MethodGet, "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, body = fx.do(t, req)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])

	identity, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", identity["roleTag"])
	assert.Equal(t, "a@x.com", identity["email"])
	assert.Equal(t, "Ada", identity["name"])
}

func TestSignupValidation(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	cases := []map[string]string{
		{"name": "Ab", "email": "a@x.com", "password": "password1"},
		{"name": "Ada", "email": "not-an-email", "password": "password1"},
		{"name": "Ada", "email": "a@x.com", "password": "short"},
		{"name": "Ada", "email": "a@x.com", "password": strings.Repeat("p", 16)},
	}
	for _, payload := range cases {
		resp, body := fx.postJSON(t, "/auth/signup", payload)
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode, "payload %v", payload)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(body), "payload %v", payload)
	}
}

func TestRestaurantSignupWithImages(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	buf, contentType := multipartForm(t,
		map[string]string{
			"name": "Trattoria", "email": "r@x.com", "password": "password1",
			"address": "1 Main St", "phone": "555-0100",
		},
		map[string]int{"logoImage": 512, "mapImage": 256},
	)
	req := httptest.NewRequest(nethttp.MethodPost, "/auth/restaurant/signup", buf)
	req.Header.Set("Content-Type", contentType)

	resp, body := fx.do(t, req)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, "body: %v", body)

	require.Len(t, fx.store.puts, 2)
	assert.Equal(t, "logo", fx.store.puts[0].Name)
	assert.Equal(t, "map", fx.store.puts[1].Name)
	assert.Equal(t, "restaurants/r@x.com", fx.store.puts[0].Folder)

	stored, err := fx.restaurants.GetByEmail(context.Background(), "r@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.LogoImage)
	require.NotNil(t, stored.MapImage)
	assert.Equal(t, "restaurants/r@x.com/logo", stored.LogoImage.RemoteID)
}

func TestRestaurantSignupOversizedLogoRejectedBeforeUpload(t *testing.T) {
	fx := newAppFixture(t, 1024)

	buf, contentType := multipartForm(t,
		map[string]string{
			"name": "Trattoria", "email": "r@x.com", "password": "password1",
			"address": "1 Main St", "phone": "555-0100",
		},
		map[string]int{"logoImage": 4096},
	)
	req := httptest.NewRequest(nethttp.MethodPost, "/auth/restaurant/signup", buf)
	req.Header.Set("Content-Type", contentType)

	resp, body := fx.do(t, req)
	assert.Equal(t, nethttp.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "FILE_TOO_LARGE", errorCode(body))

	assert.Empty(t, fx.store.puts, "no remote call for a rejected file")
	_, err := fx.restaurants.GetByEmail(context.Background(), "r@x.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows, "no principal created")
}

func TestRestaurantSignupWithoutImages(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	buf, contentType := multipartForm(t,
		map[string]string{
			"name": "Trattoria", "email": "r@x.com", "password": "password1",
			"address": "1 Main St", "phone": "555-0100",
		},
		nil,
	)
	req := httptest.NewRequest(nethttp.MethodPost, "/auth/restaurant/signup", buf)
	req.Header.Set("Content-Type", contentType)

	resp, _ := fx.do(t, req)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Empty(t, fx.store.puts)
}

func TestDashboardRequiresRestaurantToken(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	// no token at all
	req := httptest.NewRequest(nethttp.MethodGet, "/dashboard/restaurant/profile", nil)
	resp, body := fx.do(t, req)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_MISSING", errorCode(body))

	// a diner token is authenticated but not an operator
	_, body = fx.postJSON(t, "/auth/signup", map[string]string{"name": "Ada", "email": "a@x.com", "password": "password1"})
	resp, body = fx.postJSON(t, "/auth/login", map[string]string{"email": "a@x.com", "password": "password1"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token := body["auth"].(map[string]any)["token"].(string)

	req = httptest.NewRequest(nethttp.MethodGet, "/dashboard/restaurant/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = fx.do(t, req)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestRestaurantLoginAndProfile(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	buf, contentType := multipartForm(t,
		map[string]string{
			"name": "Trattoria", "email": "r@x.com", "password": "password1",
			"address": "1 Main St", "phone": "555-0100",
		},
		map[string]int{"logoImage": 64},
	)
	req := httptest.NewRequest(nethttp.MethodPost, "/auth/restaurant/signup", buf)
	req.Header.Set("Content-Type", contentType)
	resp, _ := fx.do(t, req)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, body := fx.postJSON(t, "/auth/restaurant/login", map[string]string{"email": "r@x.com", "password": "password1"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["id"])
	token := body["auth"].(map[string]any)["token"].(string)

	req = httptest.NewRequest(nethttp.MethodGet, "/dashboard/restaurant/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, body = fx.do(t, req)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	profile, ok := body["data"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	assert.Equal(t, "Trattoria", profile["name"])
	assert.NotNil(t, profile["logoImage"])
}

func TestPublicCatalogExcludesCredentials(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	buf, contentType := multipartForm(t,
		map[string]string{
			"name": "Trattoria", "email": "r@x.com", "password": "password1",
			"address": "1 Main St", "phone": "555-0100",
		},
		nil,
	)
	req := httptest.NewRequest(nethttp.MethodPost, "/auth/restaurant/signup", buf)
	req.Header.Set("Content-Type", contentType)
	resp, _ := fx.do(t, req)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(nethttp.MethodGet, "/restaurants", nil)
	listResp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	listResp.Body.Close()
	require.Equal(t, nethttp.StatusOK, listResp.StatusCode)

	var listings []map[string]any
	require.NoError(t, json.Unmarshal(raw, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Trattoria", listings[0]["name"])
	_, hasEmail := listings[0]["email"]
	assert.False(t, hasEmail, "listing carries no account identifiers")
	_, hasHash := listings[0]["passwordHash"]
	assert.False(t, hasHash)
}

func TestExpiredTokenOnProtectedRoute(t *testing.T) {
	fx := newAppFixture(t, 10<<20)

	req := httptest.NewRequest(nethttp.MethodGet, "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, body := fx.do(t, req)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_INVALID", errorCode(body))
}
