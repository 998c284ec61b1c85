package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/repository"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// MenuItemInput carries the writable fields of a standard menu entry.
type MenuItemInput struct {
	Name        string
	Price       float64
	Description string
	Category    domain.MenuCategory
	Quantity    int
	IsAvailable bool
}

// MenuService manages a restaurant's standard menu.
type MenuService struct {
	items repository.MenuItemRepository
}

// NewMenuService builds the service.
func NewMenuService(items repository.MenuItemRepository) *MenuService {
	return &MenuService{items: items}
}

// ListItems returns the restaurant's menu entries.
func (s *MenuService) ListItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	return s.items.ListByRestaurant(ctx, restaurantID)
}

// AddItem creates a menu entry owned by the restaurant.
func (s *MenuService) AddItem(ctx context.Context, restaurantID string, input MenuItemInput) (*domain.MenuItem, error) {
	if err := validateMenuItem(input); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Category:     input.Category,
		Quantity:     input.Quantity,
		IsAvailable:  input.IsAvailable,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem rewrites a menu entry. Ownership is enforced by the repository
// matching both id and restaurant id.
func (s *MenuService) UpdateItem(ctx context.Context, restaurantID, id string, input MenuItemInput) (*domain.MenuItem, error) {
	if err := validateMenuItem(input); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Category:     input.Category,
		Quantity:     input.Quantity,
		IsAvailable:  input.IsAvailable,
	}
	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("menu item", nil)
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a menu entry the restaurant owns.
func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, id string) error {
	if err := s.items.Delete(ctx, restaurantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("menu item", nil)
		}
		return err
	}
	return nil
}

func validateMenuItem(input MenuItemInput) error {
	if input.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if input.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	if !input.Category.Valid() {
		return apperrors.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}
	if input.Quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative", nil)
	}
	return nil
}
