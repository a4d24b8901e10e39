package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/metrics"
	"github.com/x986x/CW6/internal/models"
	"go.uber.org/zap"
)

// SentResponse is the provider response recorded for a successful send.
const SentResponse = "Email sent successfully"

// MailingStore is the slice of storage the dispatch job needs for mailings.
// *repositories.MailingRepo satisfies it.
type MailingStore interface {
	ListByStatus(ctx context.Context, status string) ([]models.Mailing, error)
	Save(ctx context.Context, m *models.Mailing) error
	ListRecipientEmails(ctx context.Context, mailingID uuid.UUID) ([]string, error)
}

// MessageStore lists the messages attached to a mailing.
type MessageStore interface {
	ListByMailing(ctx context.Context, mailingID uuid.UUID) ([]models.Message, error)
}

// LogStore appends delivery log entries.
type LogStore interface {
	Append(ctx context.Context, l *models.DeliveryLog) error
}

// Mailer is the outbound transport. One call sends one message to the whole
// recipient list.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}

// DispatchJob walks every started mailing once per tick, fires the ones whose
// schedule is due, and records one delivery log per message attempt.
type DispatchJob struct {
	mailings MailingStore
	messages MessageStore
	logs     LogStore
	mailer   Mailer
	loc      *time.Location
	log      *zap.Logger

	now func() time.Time
}

func NewDispatchJob(
	mailings MailingStore,
	messages MessageStore,
	logs LogStore,
	mailer Mailer,
	loc *time.Location,
	log *zap.Logger,
) *DispatchJob {
	return &DispatchJob{
		mailings: mailings,
		messages: messages,
		logs:     logs,
		mailer:   mailer,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one dispatch pass. Storage errors abort the pass and surface
// to the scheduler; transport errors are recorded per message and never abort
// the batch. The clock is read once so the whole batch sees the same "now".
func (j *DispatchJob) Run(ctx context.Context) error {
	now := j.now().In(j.loc)
	j.log.Info("dispatch tick", zap.Time("now", now))

	mailings, err := j.mailings.ListByStatus(ctx, models.MailingStatusStarted)
	if err != nil {
		return fmt.Errorf("list started mailings: %w", err)
	}

	for i := range mailings {
		m := &mailings[i]

		fire, next := models.EvaluateSchedule(m.Frequency, m.StartTime, now)
		if !fire {
			continue
		}

		// Advance the start time before any send so a re-run within the
		// same minute cannot fire the same occurrence twice.
		m.StartTime = next
		m.Status = models.MailingStatusStarted
		if err := j.mailings.Save(ctx, m); err != nil {
			return fmt.Errorf("advance mailing %s: %w", m.ID, err)
		}

		if err := j.fire(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

func (j *DispatchJob) fire(ctx context.Context, m *models.Mailing) error {
	emails, err := j.mailings.ListRecipientEmails(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list recipients of mailing %s: %w", m.ID, err)
	}

	msgs, err := j.messages.ListByMailing(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list messages of mailing %s: %w", m.ID, err)
	}

	metrics.MailingsFired.Inc()
	j.log.Info("firing mailing",
		zap.String("mailing_id", m.ID.String()),
		zap.String("frequency", m.Frequency),
		zap.Int("messages", len(msgs)),
		zap.Int("recipients", len(emails)),
	)

	for _, msg := range msgs {
		status := models.LogStatusSuccess
		response := SentResponse

		if err := j.mailer.Send(ctx, msg.Subject, msg.Body, emails); err != nil {
			status = models.LogStatusError
			response = err.Error()
			metrics.EmailFailures.Inc()
			j.log.Error("send failed",
				zap.String("mailing_id", m.ID.String()),
				zap.String("message_id", msg.ID.String()),
				zap.Error(err),
			)
		} else {
			metrics.EmailsSent.Inc()
		}

		entry := &models.DeliveryLog{
			MessageID: msg.ID,
			Status:    status,
			Response:  response,
		}
		if err := j.logs.Append(ctx, entry); err != nil {
			return fmt.Errorf("append delivery log for message %s: %w", msg.ID, err)
		}
	}

	// Outcome of the sends is not inspected: the firing cycle completed.
	m.Status = models.MailingStatusCompleted
	if err := j.mailings.Save(ctx, m); err != nil {
		return fmt.Errorf("complete mailing %s: %w", m.ID, err)
	}

	return nil
}
