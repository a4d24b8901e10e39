package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text email over SMTP. A shared rate limiter keeps the
// outbound rate within the provider's allowance.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	limiter *rate.Limiter
	log     *zap.Logger
}

func New(host string, port int, user, password, from string, ratePerSecond int, log *zap.Logger) *Mailer {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Mailer{
		dialer:  gomail.NewDialer(host, port, user, password),
		from:    from,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		log:     log,
	}
}

// Send delivers one email addressed to the full recipient list at once.
func (m *Mailer) Send(ctx context.Context, subject, body string, to []string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}
	return nil
}

// SendWithRetry retries a send with exponential backoff. Used only for
// transactional account email (verification, password recovery) — campaign
// dispatch never retries within a tick.
func (m *Mailer) SendWithRetry(ctx context.Context, subject, body string, to []string) error {
	operation := func() error {
		return m.Send(ctx, subject, body, to)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
