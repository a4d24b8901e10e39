package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MailingsFired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mailings_fired_total",
			Help: "Total mailing firings dispatched",
		},
	)

	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total campaign emails sent",
		},
	)

	EmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "email_failures_total",
			Help: "Total failed campaign emails",
		},
	)

	TicksSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_ticks_skipped_total",
			Help: "Ticks skipped because the previous job instance was still running",
		},
		[]string{"job"},
	)
)

func Init() {
	prometheus.MustRegister(MailingsFired)
	prometheus.MustRegister(EmailsSent)
	prometheus.MustRegister(EmailFailures)
	prometheus.MustRegister(TicksSkipped)
}
