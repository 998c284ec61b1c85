package domain

import "time"

// Combo is a fixed-price meal deal on a combo-type menu.
type Combo struct {
	ID            string    `json:"id"`
	RestaurantID  string    `json:"restaurantId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	OriginalPrice float64   `json:"originalPrice"`
	SalePrice     float64   `json:"salePrice"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ComboOptionGroup distinguishes the two option lists attached to a combo menu.
type ComboOptionGroup string

const (
	ComboOptionProtein ComboOptionGroup = "protein"
	ComboOptionSide    ComboOptionGroup = "side"
)

// ComboOption is a selectable protein or side on a combo menu.
type ComboOption struct {
	ID           string           `json:"id"`
	RestaurantID string           `json:"restaurantId"`
	Group        ComboOptionGroup `json:"group"`
	Name         string           `json:"name"`
	IsAvailable  bool             `json:"isAvailable"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
