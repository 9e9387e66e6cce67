package models

import (
	"time"

	"github.com/google/uuid"
)

// Route is a reusable pickup/dropoff lane.
type Route struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      string    `json:"company_id"`
	RouteName      string    `json:"route_name"`
	PickupAddress  string    `json:"pickup_address,omitempty"`
	PickupCity     string    `json:"pickup_city"`
	PickupState    string    `json:"pickup_state"`
	DropoffAddress string    `json:"dropoff_address,omitempty"`
	DropoffCity    string    `json:"dropoff_city"`
	DropoffState   string    `json:"dropoff_state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultRouteName builds the display name used when none is provided.
func DefaultRouteName(pickupCity, dropoffCity string) string {
	return pickupCity + " → " + dropoffCity
}
