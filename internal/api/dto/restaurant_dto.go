package dto

import "github.com/secondplate/restaurant-service/internal/domain"

// RestaurantSignupForm carries the non-file multipart fields of
// POST /auth/restaurant/signup. The logoImage/mapImage file parts are read
// from the multipart form directly.
type RestaurantSignupForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Address  string `json:"address" form:"address"`
	Phone    string `json:"phone" form:"phone"`
}

// RestaurantProfileForm carries optional profile update fields.
type RestaurantProfileForm struct {
	Name      *string `json:"name" form:"name"`
	Address   *string `json:"address" form:"address"`
	Phone     *string `json:"phone" form:"phone"`
	OpenTime  *string `json:"openTime" form:"openTime"`
	CloseTime *string `json:"closeTime" form:"closeTime"`
	IsOpen    *bool   `json:"isOpen" form:"isOpen"`
	MenuType  *string `json:"menuType" form:"menuType"`
}

// RestaurantStatusRequest toggles availability.
type RestaurantStatusRequest struct {
	IsOpen    *bool   `json:"isOpen"`
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
}

// RestaurantProfileResponse is the operator-facing profile projection.
type RestaurantProfileResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Address   string           `json:"address"`
	Phone     string           `json:"phone"`
	LogoImage *domain.AssetRef `json:"logoImage,omitempty"`
	MapImage  *domain.AssetRef `json:"mapImage,omitempty"`
	OpenTime  string           `json:"openTime"`
	CloseTime string           `json:"closeTime"`
	IsOpen    bool             `json:"isOpen"`
	MenuType  domain.MenuType  `json:"menuType"`
}

// NewRestaurantProfileResponse projects the domain record.
func NewRestaurantProfileResponse(r *domain.Restaurant) RestaurantProfileResponse {
	return RestaurantProfileResponse{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Address:   r.Address,
		Phone:     r.Phone,
		LogoImage: r.LogoImage,
		MapImage:  r.MapImage,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
		IsOpen:    r.IsOpen,
		MenuType:  r.MenuType,
	}
}
