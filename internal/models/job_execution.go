package models

import (
	"time"

	"github.com/google/uuid"
)

// Job execution outcomes
const (
	JobExecutionSuccess = "success"
	JobExecutionError   = "error"
)

// JobExecution is one row of scheduler run history. The weekly cleanup job
// prunes rows older than the configured retention window.
type JobExecution struct {
	ID         uuid.UUID `json:"id"`
	JobName    string    `json:"job_name"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
}
