package events

import (
	"time"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventRestaurantRegistered EventType = "restaurant_registered"
	EventLoginSucceeded       EventType = "login_succeeded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	PrincipalID string         `json:"principal_id"`
	Role        domain.RoleTag `json:"role"`
	Timestamp   time.Time      `json:"timestamp"`
	Payload     interface{}    `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RestaurantRegisteredPayload payload.
type RestaurantRegisteredPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	HasLogo  bool   `json:"has_logo"`
	HasMap   bool   `json:"has_map"`
	MenuType string `json:"menu_type"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Email     string `json:"email"`
	Federated bool   `json:"federated"`
}
