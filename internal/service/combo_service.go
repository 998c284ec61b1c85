package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/repository"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// ComboInput carries the writable fields of a combo.
type ComboInput struct {
	Name          string
	Description   string
	OriginalPrice float64
	SalePrice     float64
}

// ComboMenu bundles everything a combo-type menu publishes.
type ComboMenu struct {
	Combos   []domain.Combo       `json:"combos"`
	Proteins []domain.ComboOption `json:"proteins"`
	Sides    []domain.ComboOption `json:"sides"`
}

// ComboService manages a restaurant's combo menu.
type ComboService struct {
	combos repository.ComboRepository
}

// NewComboService builds the service.
func NewComboService(combos repository.ComboRepository) *ComboService {
	return &ComboService{combos: combos}
}

// GetMenu returns combos plus both option lists.
func (s *ComboService) GetMenu(ctx context.Context, restaurantID string) (*ComboMenu, error) {
	combos, err := s.combos.ListCombos(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	proteins, err := s.combos.ListOptions(ctx, restaurantID, domain.ComboOptionProtein)
	if err != nil {
		return nil, err
	}
	sides, err := s.combos.ListOptions(ctx, restaurantID, domain.ComboOptionSide)
	if err != nil {
		return nil, err
	}
	return &ComboMenu{Combos: combos, Proteins: proteins, Sides: sides}, nil
}

// AddCombo creates a combo owned by the restaurant.
func (s *ComboService) AddCombo(ctx context.Context, restaurantID string, input ComboInput) (*domain.Combo, error) {
	if err := validateCombo(input); err != nil {
		return nil, err
	}
	combo := &domain.Combo{
		RestaurantID:  restaurantID,
		Name:          input.Name,
		Description:   input.Description,
		OriginalPrice: input.OriginalPrice,
		SalePrice:     input.SalePrice,
	}
	if err := s.combos.CreateCombo(ctx, combo); err != nil {
		return nil, err
	}
	return combo, nil
}

// UpdateCombo rewrites a combo the restaurant owns.
func (s *ComboService) UpdateCombo(ctx context.Context, restaurantID, id string, input ComboInput) (*domain.Combo, error) {
	if err := validateCombo(input); err != nil {
		return nil, err
	}
	combo := &domain.Combo{
		ID:            id,
		RestaurantID:  restaurantID,
		Name:          input.Name,
		Description:   input.Description,
		OriginalPrice: input.OriginalPrice,
		SalePrice:     input.SalePrice,
	}
	if err := s.combos.UpdateCombo(ctx, combo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("combo", nil)
		}
		return nil, err
	}
	return combo, nil
}

// DeleteCombo removes a combo the restaurant owns.
func (s *ComboService) DeleteCombo(ctx context.Context, restaurantID, id string) error {
	if err := s.combos.DeleteCombo(ctx, restaurantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("combo", nil)
		}
		return err
	}
	return nil
}

// AddOption creates a protein or side option.
func (s *ComboService) AddOption(ctx context.Context, restaurantID string, group domain.ComboOptionGroup, name string, available bool) (*domain.ComboOption, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	option := &domain.ComboOption{
		RestaurantID: restaurantID,
		Group:        group,
		Name:         name,
		IsAvailable:  available,
	}
	if err := s.combos.CreateOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// DeleteOption removes a protein or side option the restaurant owns.
func (s *ComboService) DeleteOption(ctx context.Context, restaurantID string, group domain.ComboOptionGroup, id string) error {
	if err := s.combos.DeleteOption(ctx, restaurantID, group, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("option", nil)
		}
		return err
	}
	return nil
}

func validateCombo(input ComboInput) error {
	if input.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if input.OriginalPrice < 0 || input.SalePrice < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	return nil
}
