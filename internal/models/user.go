package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Country         *string   `json:"country,omitempty"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	IsVerifiedEmail bool      `json:"is_verified_email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EmailVerification is a one-shot code mailed to a freshly registered user.
type EmailVerification struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Code       uuid.UUID `json:"code"`
	Expiration time.Time `json:"expiration"`
	CreatedAt  time.Time `json:"created_at"`
}

func (v *EmailVerification) IsExpired(now time.Time) bool {
	return now.After(v.Expiration)
}
