package models

import (
	"time"

	"github.com/google/uuid"
)

// Truck is a company power unit.
type Truck struct {
	ID               uuid.UUID  `json:"id"`
	CompanyID        string     `json:"company_id"`
	TruckNumber      string     `json:"truck_number"`
	Make             string     `json:"make"`
	Model            string     `json:"model"`
	Year             int        `json:"year"`
	VIN              string     `json:"vin,omitempty"`
	Color            string     `json:"color,omitempty"`
	Mileage          int64      `json:"mileage"`
	FuelType         string     `json:"fuel_type,omitempty"`
	PlateNumber      string     `json:"plate_number"`
	AssignedDriverID *uuid.UUID `json:"assigned_driver_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
