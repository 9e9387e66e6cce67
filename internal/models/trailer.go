package models

import (
	"time"

	"github.com/google/uuid"
)

// Trailer is a company trailer.
type Trailer struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       string     `json:"company_id"`
	TrailerNumber   string     `json:"trailer_number"`
	TrailerType     string     `json:"trailer_type"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Year            int        `json:"year"`
	VIN             string     `json:"vin,omitempty"`
	PlateNumber     string     `json:"plate_number"`
	Length          string     `json:"length"`
	Capacity        string     `json:"capacity"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
	LastInspection  *time.Time `json:"last_inspection,omitempty"`
	InsuranceExpiry *time.Time `json:"insurance_expiry,omitempty"`
	AssignedTruckID *uuid.UUID `json:"assigned_truck_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
