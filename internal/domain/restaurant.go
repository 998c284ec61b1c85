package domain

import "time"

// MenuType selects which menu shape a restaurant publishes.
type MenuType string

const (
	MenuTypeStandard MenuType = "standard"
	MenuTypeCombo    MenuType = "combo"
)

// Restaurant models an operator account together with its public profile.
type Restaurant struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Phone        string
	LogoImage    *AssetRef
	MapImage     *AssetRef
	OpenTime     string
	CloseTime    string
	IsOpen       bool
	MenuType     MenuType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
