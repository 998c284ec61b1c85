package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/upload"
)

type dashboardFixture struct {
	svc         *DashboardService
	restaurants *memRestaurantRepo
	store       *stubStore
}

func newDashboardFixture(t *testing.T) (*dashboardFixture, *domain.Restaurant) {
	t.Helper()
	restaurants := newMemRestaurantRepo()
	store := newStubStore()
	svc := NewDashboardService(restaurants, upload.NewOrchestrator(store, zap.NewNop(), 0), zap.NewNop())

	seeded := &domain.Restaurant{
		Name: "Trattoria", Email: "r@x.com", PasswordHash: "x",
		Address: "1 Main St", Phone: "555-0100",
		OpenTime: "09:00", CloseTime: "22:00", IsOpen: true,
		MenuType:  domain.MenuTypeStandard,
		LogoImage: &domain.AssetRef{URL: "https://cdn.test/old/logo", RemoteID: "old/logo"},
	}
	require.NoError(t, restaurants.Create(context.Background(), seeded))

	return &dashboardFixture{svc: svc, restaurants: restaurants, store: store}, seeded
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileReplacesLogoAndDiscardsOldObject(t *testing.T) {
	fx, seeded := newDashboardFixture(t)

	updated, err := fx.svc.UpdateProfile(context.Background(), seeded.ID, ProfileUpdateInput{
		Name:    strPtr("Osteria"),
		Uploads: []upload.Request{stagedUpload(t, domain.AssetKindLogo)},
	})
	require.NoError(t, err)

	assert.Equal(t, "Osteria", updated.Name)
	require.NotNil(t, updated.LogoImage)
	assert.Equal(t, "restaurants/r@x.com/logo", updated.LogoImage.RemoteID)

	assert.Equal(t, []string{"old/logo"}, fx.store.deletes,
		"the superseded object is removed only after the row persisted")

	stored, err := fx.restaurants.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Osteria", stored.Name)
	assert.Equal(t, "restaurants/r@x.com/logo", stored.LogoImage.RemoteID)
}

func TestUpdateProfileKeepsExistingImagesWhenNoneUploaded(t *testing.T) {
	fx, seeded := newDashboardFixture(t)

	updated, err := fx.svc.UpdateProfile(context.Background(), seeded.ID, ProfileUpdateInput{
		Phone: strPtr("555-0199"),
	})
	require.NoError(t, err)

	assert.Equal(t, "555-0199", updated.Phone)
	require.NotNil(t, updated.LogoImage)
	assert.Equal(t, "old/logo", updated.LogoImage.RemoteID)
	assert.Empty(t, fx.store.deletes)
	assert.Empty(t, fx.store.puts)
}

func TestUpdateProfileInvalidMenuTypeDiscardsNewUploads(t *testing.T) {
	fx, seeded := newDashboardFixture(t)

	menuType := domain.MenuType("buffet")
	_, err := fx.svc.UpdateProfile(context.Background(), seeded.ID, ProfileUpdateInput{
		MenuType: &menuType,
		Uploads:  []upload.Request{stagedUpload(t, domain.AssetKindMap)},
	})
	assertCode(t, err, "VALIDATION_FAILED")

	assert.Equal(t, []string{"restaurants/r@x.com/map"}, fx.store.deletes,
		"the already-committed replacement was discarded")

	stored, err := fx.restaurants.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MenuTypeStandard, stored.MenuType)
	assert.Nil(t, stored.MapImage)
}

func TestUpdateProfileUnknownRestaurant(t *testing.T) {
	fx, _ := newDashboardFixture(t)

	_, err := fx.svc.UpdateProfile(context.Background(), "missing", ProfileUpdateInput{
		Name: strPtr("Ghost"),
	})
	assertCode(t, err, "NOT_FOUND")
	assert.Empty(t, fx.store.puts, "nothing staged for an unknown account")
}

func TestUpdateStatus(t *testing.T) {
	fx, seeded := newDashboardFixture(t)

	closed := false
	updated, err := fx.svc.UpdateStatus(context.Background(), seeded.ID, StatusUpdateInput{
		IsOpen:   &closed,
		OpenTime: strPtr("11:00"),
	})
	require.NoError(t, err)

	assert.False(t, updated.IsOpen)
	assert.Equal(t, "11:00", updated.OpenTime)
	assert.Equal(t, "22:00", updated.CloseTime, "unspecified fields stay put")
}
