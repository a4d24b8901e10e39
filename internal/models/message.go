package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one email body attached to a mailing. Every firing of the
// mailing sends each of its messages to the full recipient list.
type Message struct {
	ID        uuid.UUID  `json:"id"`
	MailingID uuid.UUID  `json:"mailing_id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
