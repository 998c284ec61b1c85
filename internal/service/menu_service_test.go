package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondplate/restaurant-service/internal/domain"
)

type memMenuItemRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.MenuItem
}

func newMemMenuItemRepo() *memMenuItemRepo {
	return &memMenuItemRepo{byID: map[string]*domain.MenuItem{}}
}

func (r *memMenuItemRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = fmt.Sprintf("item-%d", r.seq)
	stored := *item
	r.byID[item.ID] = &stored
	return nil
}

func (r *memMenuItemRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return pgx.ErrNoRows
	}
	stored := *item
	r.byID[item.ID] = &stored
	return nil
}

func (r *memMenuItemRepo) Delete(_ context.Context, restaurantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[id]
	if !ok || existing.RestaurantID != restaurantID {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memMenuItemRepo) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.byID[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memMenuItemRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MenuItem
	for _, item := range r.byID {
		if item.RestaurantID == restaurantID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func TestAddItemValidation(t *testing.T) {
	svc := NewMenuService(newMemMenuItemRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		input MenuItemInput
	}{
		{"empty name", MenuItemInput{Category: domain.MenuCategoryMain, Price: 9}},
		{"negative price", MenuItemInput{Name: "Pasta", Category: domain.MenuCategoryMain, Price: -1}},
		{"unknown category", MenuItemInput{Name: "Pasta", Category: "brunch", Price: 9}},
		{"negative quantity", MenuItemInput{Name: "Pasta", Category: domain.MenuCategoryMain, Price: 9, Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "r1", tc.input)
			assertCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestMenuItemOwnership(t *testing.T) {
	svc := NewMenuService(newMemMenuItemRepo())
	ctx := context.Background()

	item, err := svc.AddItem(ctx, "r1", MenuItemInput{
		Name: "Pasta", Price: 12.5, Category: domain.MenuCategoryMain, Quantity: 10, IsAvailable: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	// another restaurant cannot touch it
	_, err = svc.UpdateItem(ctx, "r2", item.ID, MenuItemInput{
		Name: "Stolen", Price: 1, Category: domain.MenuCategoryMain,
	})
	assertCode(t, err, "NOT_FOUND")

	err = svc.DeleteItem(ctx, "r2", item.ID)
	assertCode(t, err, "NOT_FOUND")

	// the owner can
	updated, err := svc.UpdateItem(ctx, "r1", item.ID, MenuItemInput{
		Name: "Pasta al Forno", Price: 14, Category: domain.MenuCategoryMain, Quantity: 8, IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pasta al Forno", updated.Name)

	require.NoError(t, svc.DeleteItem(ctx, "r1", item.ID))

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
