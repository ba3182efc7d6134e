package model

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestOpen, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Request is a care job posted by a family.
type Request struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Tags        string        `db:"tags" json:"tags"`
	Location    string        `db:"location" json:"location"`
	HourlyRate  float64       `db:"hourly_rate" json:"hourly_rate"`
	Status      RequestStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// RequestDetails is the eager shape: the request plus its poster.
type RequestDetails struct {
	Request
	Poster User `db:"poster" json:"poster"`
}

type RequestUpdate struct {
	Title       Field[string]
	Description Field[string]
	Tags        Field[string]
	Location    Field[string]
	HourlyRate  Field[float64]
	Status      Field[RequestStatus]
}
