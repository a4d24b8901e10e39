package models

import (
	"time"

	"github.com/google/uuid"
)

// Mailing frequencies
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Mailing statuses
const (
	MailingStatusCreated   = "created"
	MailingStatusStarted   = "started"
	MailingStatusCompleted = "completed"
	MailingStatusStopped   = "stopped"
)

type Mailing struct {
	ID           uuid.UUID   `json:"id"`
	StartTime    time.Time   `json:"start_time"`
	Frequency    string      `json:"frequency"`
	Status       string      `json:"status"`
	EndTime      *time.Time  `json:"end_time,omitempty"`
	OwnerID      *uuid.UUID  `json:"owner_id,omitempty"`
	RecipientIDs []uuid.UUID `json:"recipient_ids,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func IsValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

func IsValidMailingStatus(s string) bool {
	switch s {
	case MailingStatusCreated, MailingStatusStarted, MailingStatusCompleted, MailingStatusStopped:
		return true
	}
	return false
}

// EvaluateSchedule decides whether a mailing is due to fire at now and, if
// so, what its next start time is. The match is minute-exact: a mailing fires
// only during the minute its start time names, once the start time has been
// reached. Missed minutes are skipped, never backfilled. Unknown frequencies
// never fire.
func EvaluateSchedule(frequency string, start, now time.Time) (bool, time.Time) {
	start = start.In(now.Location())
	if now.Before(start) {
		return false, start
	}

	sameClock := now.Hour() == start.Hour() && now.Minute() == start.Minute()

	switch frequency {
	case FrequencyDaily:
		if sameClock {
			return true, start.AddDate(0, 0, 1)
		}
	case FrequencyWeekly:
		if sameClock && now.Weekday() == start.Weekday() {
			return true, start.AddDate(0, 0, 7)
		}
	case FrequencyMonthly:
		if sameClock && now.Day() == start.Day() {
			return true, start.AddDate(0, 0, 30)
		}
	}
	return false, start
}

// EndTimeFor derives a mailing's end time from its frequency: one interval
// past the start time. Returns nil for unknown frequencies.
func EndTimeFor(frequency string, start time.Time) *time.Time {
	var end time.Time
	switch frequency {
	case FrequencyDaily:
		end = start.AddDate(0, 0, 1)
	case FrequencyWeekly:
		end = start.AddDate(0, 0, 7)
	case FrequencyMonthly:
		end = start.AddDate(0, 0, 30)
	default:
		return nil
	}
	return &end
}
