package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrOdometerBackwards is returned when an ending odometer reading is lower
// than the trip's starting reading.
var ErrOdometerBackwards = errors.New("end odometer must be greater than start odometer")

// Trip is a dispatched load: a driver, truck, optional trailer and route,
// with odometer readings recorded at the start and end.
type Trip struct {
	ID                   uuid.UUID  `json:"id"`
	CompanyID            string     `json:"company_id"`
	TripNumber           string     `json:"trip_number"`
	DriverID             uuid.UUID  `json:"driver_id"`
	TruckID              uuid.UUID  `json:"truck_id"`
	TrailerID            *uuid.UUID `json:"trailer_id,omitempty"`
	RouteID              uuid.UUID  `json:"route_id"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	StartingMiles        int64      `json:"starting_miles"`
	EndingMiles          *int64     `json:"ending_miles,omitempty"`
	TotalTripDrivenMiles *int64     `json:"total_trip_driven_miles,omitempty"`
	RateDocURL           string     `json:"rate_doc_url,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TripMiles computes driven miles from odometer readings. Rejects readings
// that would make the trip negative; the stored mileage must not change in
// that case.
func TripMiles(startingMiles, endingMiles int64) (int64, error) {
	if endingMiles < startingMiles {
		return 0, ErrOdometerBackwards
	}
	return endingMiles - startingMiles, nil
}
