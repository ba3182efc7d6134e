package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleNanny  UserRole = "nanny"
	RoleFamily UserRole = "family"
)

func (r UserRole) Valid() bool {
	return r == RoleNanny || r == RoleFamily
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	Location     *string   `db:"location" json:"location,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserUpdate carries the fields a profile update may touch. Only fields
// with Set=true are written; pointer values distinguish "clear" from "omit".
type UserUpdate struct {
	Email    Field[string]
	Username Field[string]
	FullName Field[string]
	Bio      Field[*string]
	Location Field[*string]
	Phone    Field[*string]
	IsActive Field[bool]
}
