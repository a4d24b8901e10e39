package models

import (
	"time"

	"github.com/google/uuid"
)

// Delivery log statuses
const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// DeliveryLog is an immutable record of one message-send attempt. Entries
// are append-only: nothing in the system updates or deletes them.
type DeliveryLog struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Response  string    `json:"response,omitempty"`
}
