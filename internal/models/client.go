package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a mailing recipient.
type Client struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Comment   string     `json:"comment,omitempty"`
	IsActive  bool       `json:"is_active"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
