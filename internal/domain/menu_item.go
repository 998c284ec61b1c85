package domain

import "time"

// MenuCategory enumerates standard menu sections.
type MenuCategory string

const (
	MenuCategoryMain     MenuCategory = "main"
	MenuCategoryStarter  MenuCategory = "starter"
	MenuCategoryDessert  MenuCategory = "dessert"
	MenuCategoryBeverage MenuCategory = "beverage"
)

// Valid reports whether the category is one of the closed set.
func (c MenuCategory) Valid() bool {
	switch c {
	case MenuCategoryMain, MenuCategoryStarter, MenuCategoryDessert, MenuCategoryBeverage:
		return true
	}
	return false
}

// MenuItem is a single standard-menu entry owned by a restaurant.
type MenuItem struct {
	ID           string       `json:"id"`
	RestaurantID string       `json:"restaurantId"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	Description  string       `json:"description"`
	Category     MenuCategory `json:"category"`
	Quantity     int          `json:"quantity"`
	IsAvailable  bool         `json:"isAvailable"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
