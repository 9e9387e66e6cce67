package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the review state of a company request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusInReview  RequestStatus = "in_review"
	RequestStatusQuoted    RequestStatus = "quoted"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCompleted RequestStatus = "completed"
)

// ParseRequestStatus returns the RequestStatus for a string, or false if unknown.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusInReview, RequestStatusQuoted,
		RequestStatusAccepted, RequestStatusRejected, RequestStatusCompleted:
		return RequestStatus(s), true
	}
	return "", false
}

// CanTransition reports whether a request may move from s to next.
// The pipeline is one-way: pending → in_review → quoted → accepted → completed,
// with rejected reachable from any pre-accepted state. No reverse transitions.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return next == RequestStatusInReview || next == RequestStatusRejected
	case RequestStatusInReview:
		return next == RequestStatusQuoted || next == RequestStatusRejected
	case RequestStatusQuoted:
		return next == RequestStatusAccepted || next == RequestStatusRejected
	case RequestStatusAccepted:
		return next == RequestStatusCompleted
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusRejected || s == RequestStatusCompleted
}

// RequestContact is the prospect who submitted a company request.
type RequestContact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// CompanyRequest is a prospect's submission asking to be onboarded,
// tracked through a manual superadmin review pipeline.
type CompanyRequest struct {
	ID           uuid.UUID      `json:"id"`
	CompanyName  string         `json:"company_name"`
	DOTNumber    string         `json:"dot_number,omitempty"`
	EIN          string         `json:"employer_identification_number,omitempty"`
	NumEmployees *int           `json:"num_employees,omitempty"`
	Street       string         `json:"street,omitempty"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty"`
	Zip          string         `json:"zip,omitempty"`
	RequestedBy  RequestContact `json:"requested_by"`
	Status       RequestStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
