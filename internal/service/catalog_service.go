package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/repository"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

const (
	listingCacheKey = "catalog:restaurants"
	listingCacheTTL = 60 * time.Second
)

// RestaurantListing is the public projection of an operator account.
type RestaurantListing struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Address   string           `json:"address"`
	Phone     string           `json:"phone"`
	LogoImage *domain.AssetRef `json:"logoImage,omitempty"`
	MapImage  *domain.AssetRef `json:"mapImage,omitempty"`
	OpenTime  string           `json:"openTime"`
	CloseTime string           `json:"closeTime"`
	IsOpen    bool             `json:"isOpen"`
	MenuType  domain.MenuType  `json:"menuType"`
}

// PublicMenu is what GET /restaurants/:id/menu returns; exactly one of Items
// and Combo is set depending on MenuType.
type PublicMenu struct {
	MenuType domain.MenuType   `json:"menuType"`
	Items    []domain.MenuItem `json:"items,omitempty"`
	Combo    *ComboMenu        `json:"combo,omitempty"`
}

// CatalogService serves the public restaurant directory, caching the listing
// in Redis for a short window.
type CatalogService struct {
	restaurants repository.RestaurantRepository
	items       repository.MenuItemRepository
	combos      *ComboService
	cache       *redis.Client
	logger      *zap.Logger
}

// NewCatalogService builds the service. cache may be nil; lookups then
// always hit Postgres.
func NewCatalogService(restaurants repository.RestaurantRepository, items repository.MenuItemRepository, combos *ComboService, cache *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		items:       items,
		combos:      combos,
		cache:       cache,
		logger:      logger,
	}
}

// ListRestaurants returns the public directory.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]RestaurantListing, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	restaurants, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]RestaurantListing, 0, len(restaurants))
	for _, r := range restaurants {
		listings = append(listings, RestaurantListing{
			ID:        r.ID,
			Name:      r.Name,
			Address:   r.Address,
			Phone:     r.Phone,
			LogoImage: r.LogoImage,
			MapImage:  r.MapImage,
			OpenTime:  r.OpenTime,
			CloseTime: r.CloseTime,
			IsOpen:    r.IsOpen,
			MenuType:  r.MenuType,
		})
	}

	s.writeCache(ctx, listings)
	return listings, nil
}

// GetMenu returns the published menu in the shape matching the restaurant's
// menu type.
func (s *CatalogService) GetMenu(ctx context.Context, restaurantID string) (*PublicMenu, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", nil)
		}
		return nil, err
	}

	if restaurant.MenuType == domain.MenuTypeCombo {
		combo, err := s.combos.GetMenu(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		return &PublicMenu{MenuType: domain.MenuTypeCombo, Combo: combo}, nil
	}

	items, err := s.items.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &PublicMenu{MenuType: domain.MenuTypeStandard, Items: items}, nil
}

// InvalidateListing drops the cached directory, e.g. after a profile change.
func (s *CatalogService) InvalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listingCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate listing cache", zap.Error(err))
	}
}

func (s *CatalogService) readCache(ctx context.Context) []RestaurantListing {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read listing cache", zap.Error(err))
		}
		return nil
	}
	var listings []RestaurantListing
	if err := json.Unmarshal(raw, &listings); err != nil {
		s.logger.Warn("decode listing cache", zap.Error(err))
		return nil
	}
	return listings
}

func (s *CatalogService) writeCache(ctx context.Context, listings []RestaurantListing) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, listingCacheKey, raw, listingCacheTTL).Err(); err != nil {
		s.logger.Warn("write listing cache", zap.Error(err))
	}
}
