package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Company represents a tenant. The ID is a human-readable code
// (e.g. company_482913) so it can travel in signup links.
type Company struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	DOTNumber    string     `json:"dot_number,omitempty"`
	EIN          string     `json:"employer_identification_number,omitempty"`
	NumEmployees *int       `json:"num_employees,omitempty"`
	Street       string     `json:"street,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Zip          string     `json:"zip,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewCompanyID generates a company code of the form company_NNNNNN.
func NewCompanyID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("company_%d", 100000+n.Int64()), nil
}
