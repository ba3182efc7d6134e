package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatusScheduled is the default status for a new session. The
// column is free-form on purpose, it is not a closed enumeration.
const SessionStatusScheduled = "scheduled"

// Session is a scheduled engagement between a family and a nanny,
// always tied to the request that produced it.
type Session struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	RequestID  uuid.UUID  `db:"request_id" json:"request_id"`
	FamilyID   uuid.UUID  `db:"family_id" json:"family_id"`
	NannyID    uuid.UUID  `db:"nanny_id" json:"nanny_id"`
	StartTime  time.Time  `db:"start_time" json:"start_time"`
	EndTime    *time.Time `db:"end_time" json:"end_time,omitempty"`
	HourlyRate float64    `db:"hourly_rate" json:"hourly_rate"`
	Status     string     `db:"status" json:"status"`
	Notes      *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// SessionDetails is the eager shape: the session plus its request and
// both participants.
type SessionDetails struct {
	Session
	Request Request `db:"request" json:"request"`
	Family  User    `db:"family" json:"family"`
	Nanny   User    `db:"nanny" json:"nanny"`
}

type SessionUpdate struct {
	EndTime Field[*time.Time]
	Status  Field[string]
	Notes   Field[*string]
}
