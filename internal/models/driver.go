package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus is the operational state of a driver.
const (
	DriverStatusActive   = "Active"
	DriverStatusOnTrip   = "On Trip"
	DriverStatusInactive = "Inactive"
)

// ValidDriverStatus reports whether s is a known driver status.
func ValidDriverStatus(s string) bool {
	return s == DriverStatusActive || s == DriverStatusOnTrip || s == DriverStatusInactive
}

// Driver is a company driver record. UserID links the driver to a console
// account once an invite has been redeemed; it is nil for drivers that were
// entered by an admin but never invited.
type Driver struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       string     `json:"company_id"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	Email           string     `json:"email,omitempty"`
	Address         string     `json:"address,omitempty"`
	SSN             string     `json:"-"`
	LicenseNumber   string     `json:"license_number"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty"`
	HireDate        *time.Time `json:"hire_date,omitempty"`
	TotalMiles      int64      `json:"total_miles"`
	Status          string     `json:"status"`
	DriverPhotoURL  string     `json:"driver_photo_url,omitempty"`
	LicenseFrontURL string     `json:"license_front_url,omitempty"`
	LicenseBackURL  string     `json:"license_back_url,omitempty"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	InvitedBy       *uuid.UUID `json:"invited_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
