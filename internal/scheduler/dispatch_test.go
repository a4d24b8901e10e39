package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/models"
	"go.uber.org/zap"
)

type fakeStore struct {
	mailings []models.Mailing
	messages map[uuid.UUID][]models.Message
	emails   map[uuid.UUID][]string
	logs     []models.DeliveryLog

	saves []models.Mailing // snapshots, in order

	listErr error
	saveErr error
}

func (f *fakeStore) ListByStatus(_ context.Context, status string) ([]models.Mailing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Mailing
	for _, m := range f.mailings {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, m *models.Mailing) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, *m)
	for i := range f.mailings {
		if f.mailings[i].ID == m.ID {
			f.mailings[i] = *m
		}
	}
	return nil
}

func (f *fakeStore) ListRecipientEmails(_ context.Context, mailingID uuid.UUID) ([]string, error) {
	return f.emails[mailingID], nil
}

func (f *fakeStore) ListByMailing(_ context.Context, mailingID uuid.UUID) ([]models.Message, error) {
	return f.messages[mailingID], nil
}

func (f *fakeStore) Append(_ context.Context, l *models.DeliveryLog) error {
	l.Timestamp = time.Now()
	f.logs = append(f.logs, *l)
	return nil
}

type fakeMailer struct {
	sent    []string // subjects, in send order
	failFor map[string]error
}

func (f *fakeMailer) Send(_ context.Context, subject, _ string, _ []string) error {
	if err, ok := f.failFor[subject]; ok {
		return err
	}
	f.sent = append(f.sent, subject)
	return nil
}

func newTestJob(t *testing.T, store *fakeStore, mailer *fakeMailer, now time.Time) *DispatchJob {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	j := NewDispatchJob(store, store, store, mailer, loc, zap.NewNop())
	j.now = func() time.Time { return now }
	return j
}

func dailyMailing(loc *time.Location) models.Mailing {
	return models.Mailing{
		ID:        uuid.New(),
		StartTime: time.Date(2024, time.January, 1, 9, 0, 0, 0, loc),
		Frequency: models.FrequencyDaily,
		Status:    models.MailingStatusStarted,
	}
}

func TestDispatchFiresDueMailing(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	m := dailyMailing(loc)
	msg := models.Message{ID: uuid.New(), MailingID: m.ID, Subject: "hello", Body: "world"}

	store := &fakeStore{
		mailings: []models.Mailing{m},
		messages: map[uuid.UUID][]models.Message{m.ID: {msg}},
		emails:   map[uuid.UUID][]string{m.ID: {"a@example.com", "b@example.com"}},
	}
	mailer := &fakeMailer{}
	job := newTestJob(t, store, mailer, time.Date(2024, time.January, 1, 9, 0, 0, 0, loc))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(store.saves) != 2 {
		t.Fatalf("saves = %d, want 2 (advance, then complete)", len(store.saves))
	}

	wantNext := time.Date(2024, time.January, 2, 9, 0, 0, 0, loc)
	if !store.saves[0].StartTime.Equal(wantNext) {
		t.Errorf("first save start_time = %v, want %v", store.saves[0].StartTime, wantNext)
	}
	if store.saves[0].Status != models.MailingStatusStarted {
		t.Errorf("first save status = %q, want started", store.saves[0].Status)
	}
	if store.saves[1].Status != models.MailingStatusCompleted {
		t.Errorf("final status = %q, want completed", store.saves[1].Status)
	}

	if len(store.logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(store.logs))
	}
	if store.logs[0].Status != models.LogStatusSuccess || store.logs[0].Response != SentResponse {
		t.Errorf("log = %+v, want success with %q", store.logs[0], SentResponse)
	}
	if store.logs[0].MessageID != msg.ID {
		t.Errorf("log message_id = %v, want %v", store.logs[0].MessageID, msg.ID)
	}
}

func TestDispatchSkipsOffMinute(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	m := dailyMailing(loc)

	store := &fakeStore{
		mailings: []models.Mailing{m},
		messages: map[uuid.UUID][]models.Message{m.ID: {{ID: uuid.New(), MailingID: m.ID, Subject: "s"}}},
	}
	mailer := &fakeMailer{}
	job := newTestJob(t, store, mailer, time.Date(2024, time.January, 1, 9, 1, 0, 0, loc))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(store.saves) != 0 {
		t.Errorf("saves = %d, want 0", len(store.saves))
	}
	if len(store.logs) != 0 {
		t.Errorf("logs = %d, want 0", len(store.logs))
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(mailer.sent))
	}
	if store.mailings[0].Status != models.MailingStatusStarted {
		t.Errorf("status = %q, want untouched started", store.mailings[0].Status)
	}
}

func TestDispatchIsolatesTransportFailures(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	m := dailyMailing(loc)
	good := models.Message{ID: uuid.New(), MailingID: m.ID, Subject: "good"}
	bad := models.Message{ID: uuid.New(), MailingID: m.ID, Subject: "bad"}

	store := &fakeStore{
		mailings: []models.Mailing{m},
		messages: map[uuid.UUID][]models.Message{m.ID: {bad, good}},
		emails:   map[uuid.UUID][]string{m.ID: {"a@example.com"}},
	}
	mailer := &fakeMailer{failFor: map[string]error{"bad": errors.New("connection refused")}}
	job := newTestJob(t, store, mailer, time.Date(2024, time.January, 1, 9, 0, 0, 0, loc))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(store.logs) != 2 {
		t.Fatalf("logs = %d, want one per attempt", len(store.logs))
	}

	byMessage := map[uuid.UUID]models.DeliveryLog{}
	for _, l := range store.logs {
		byMessage[l.MessageID] = l
	}
	if byMessage[bad.ID].Status != models.LogStatusError {
		t.Errorf("bad message log status = %q, want error", byMessage[bad.ID].Status)
	}
	if byMessage[bad.ID].Response != "connection refused" {
		t.Errorf("bad message response = %q, want the transport error text", byMessage[bad.ID].Response)
	}
	if byMessage[good.ID].Status != models.LogStatusSuccess {
		t.Errorf("good message log status = %q, want success", byMessage[good.ID].Status)
	}

	// One bad send must not block the sibling nor the completion.
	if len(mailer.sent) != 1 || mailer.sent[0] != "good" {
		t.Errorf("sent = %v, want the good message delivered", mailer.sent)
	}
	final := store.saves[len(store.saves)-1]
	if final.Status != models.MailingStatusCompleted {
		t.Errorf("final status = %q, want completed", final.Status)
	}
}

func TestDispatchPropagatesStorageErrors(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")

	store := &fakeStore{listErr: errors.New("db down")}
	job := newTestJob(t, store, &fakeMailer{}, time.Date(2024, time.January, 1, 9, 0, 0, 0, loc))

	if err := job.Run(context.Background()); err == nil {
		t.Error("expected listing error to abort the run")
	}
}

func TestDispatchAbortsBeforeSendingWhenAdvanceFails(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	m := dailyMailing(loc)

	store := &fakeStore{
		mailings: []models.Mailing{m},
		messages: map[uuid.UUID][]models.Message{m.ID: {{ID: uuid.New(), MailingID: m.ID, Subject: "s"}}},
		saveErr:  errors.New("write timeout"),
	}
	mailer := &fakeMailer{}
	job := newTestJob(t, store, mailer, time.Date(2024, time.January, 1, 9, 0, 0, 0, loc))

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected save error to abort the run")
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent = %d, want 0: nothing may be sent before the advance persists", len(mailer.sent))
	}
}

func TestDispatchProcessesRemainingMailingsAfterFiringOne(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	due := dailyMailing(loc)
	notDue := dailyMailing(loc)
	notDue.StartTime = time.Date(2024, time.January, 1, 15, 30, 0, 0, loc)

	store := &fakeStore{
		mailings: []models.Mailing{due, notDue},
		messages: map[uuid.UUID][]models.Message{
			due.ID: {{ID: uuid.New(), MailingID: due.ID, Subject: "due"}},
		},
		emails: map[uuid.UUID][]string{due.ID: {"a@example.com"}},
	}
	mailer := &fakeMailer{}
	job := newTestJob(t, store, mailer, time.Date(2024, time.January, 1, 9, 0, 0, 0, loc))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Errorf("sent = %d, want 1", len(mailer.sent))
	}
	for _, m := range store.mailings {
		if m.ID == notDue.ID && m.Status != models.MailingStatusStarted {
			t.Errorf("not-due mailing status = %q, want untouched", m.Status)
		}
	}
}
