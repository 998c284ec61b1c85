package dto

// MenuItemRequest payload for creating or rewriting a standard menu entry.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	IsAvailable bool    `json:"isAvailable"`
}

// ComboRequest payload for creating or rewriting a combo.
type ComboRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"originalPrice"`
	SalePrice     float64 `json:"salePrice"`
}

// ComboOptionRequest payload for adding a protein or side option.
type ComboOptionRequest struct {
	Name        string `json:"name"`
	IsAvailable bool   `json:"isAvailable"`
}
