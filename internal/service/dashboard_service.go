package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/repository"
	"github.com/secondplate/restaurant-service/internal/upload"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// ProfileUpdateInput carries optional profile fields; nil means unchanged.
// Uploads stage replacement logo/map images.
type ProfileUpdateInput struct {
	Name      *string
	Address   *string
	Phone     *string
	OpenTime  *string
	CloseTime *string
	IsOpen    *bool
	MenuType  *domain.MenuType
	Uploads   []upload.Request
}

// StatusUpdateInput carries the open/closed dashboard toggle fields.
type StatusUpdateInput struct {
	IsOpen    *bool
	OpenTime  *string
	CloseTime *string
}

// DashboardService handles operator self-service profile updates.
type DashboardService struct {
	restaurants repository.RestaurantRepository
	uploader    *upload.Orchestrator
	logger      *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(restaurants repository.RestaurantRepository, uploader *upload.Orchestrator, logger *zap.Logger) *DashboardService {
	return &DashboardService{restaurants: restaurants, uploader: uploader, logger: logger}
}

// GetProfile loads the operator's own record.
func (s *DashboardService) GetProfile(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", nil)
		}
		return nil, err
	}
	return restaurant, nil
}

// UpdateProfile applies the provided fields. Replacement images go through
// the upload orchestrator first; if persisting then fails the new uploads
// are discarded, and on success the superseded remote objects are deleted.
func (s *DashboardService) UpdateProfile(ctx context.Context, restaurantID string, input ProfileUpdateInput) (*domain.Restaurant, error) {
	restaurant, err := s.GetProfile(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	assets, err := s.uploader.Run(ctx, input.Uploads)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Phone != nil {
		restaurant.Phone = *input.Phone
	}
	if input.OpenTime != nil {
		restaurant.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		restaurant.CloseTime = *input.CloseTime
	}
	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}
	if input.MenuType != nil {
		if *input.MenuType != domain.MenuTypeStandard && *input.MenuType != domain.MenuTypeCombo {
			s.uploader.Discard(ctx, assets)
			return nil, apperrors.NewValidationError("invalid menu type", map[string]any{"menu_type": *input.MenuType})
		}
		restaurant.MenuType = *input.MenuType
	}

	replaced := make(upload.Result)
	if ref, ok := assets[domain.AssetKindLogo]; ok {
		if restaurant.LogoImage != nil {
			replaced[domain.AssetKindLogo] = *restaurant.LogoImage
		}
		restaurant.LogoImage = &ref
	}
	if ref, ok := assets[domain.AssetKindMap]; ok {
		if restaurant.MapImage != nil {
			replaced[domain.AssetKindMap] = *restaurant.MapImage
		}
		restaurant.MapImage = &ref
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		s.uploader.Discard(ctx, assets)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", nil)
		}
		return nil, err
	}

	// old objects are unreferenced now; same best-effort compensation
	s.uploader.Discard(ctx, replaced)
	return restaurant, nil
}

// UpdateStatus toggles opening hours and availability.
func (s *DashboardService) UpdateStatus(ctx context.Context, restaurantID string, input StatusUpdateInput) (*domain.Restaurant, error) {
	restaurant, err := s.GetProfile(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}
	if input.OpenTime != nil {
		restaurant.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		restaurant.CloseTime = *input.CloseTime
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", nil)
		}
		return nil, err
	}
	return restaurant, nil
}
