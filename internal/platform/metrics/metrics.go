package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsCreated      prometheus.Counter
	RegistrationsRejected     *prometheus.CounterVec
	ConfirmationEmailsSent    prometheus.Counter
	ConfirmationEmailsFailed  prometheus.Counter
	ParticipantsDeleted       prometheus.Counter
	SignupRateLimitExceeded   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campaign_registrations_total",
			Help: "Total number of participants registered",
		}),
		RegistrationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_registrations_rejected_total",
			Help: "Total number of rejected registration attempts by reason",
		}, []string{"reason"}),
		ConfirmationEmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campaign_confirmation_emails_sent_total",
			Help: "Total number of confirmation emails confirmed sent",
		}),
		ConfirmationEmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campaign_confirmation_emails_failed_total",
			Help: "Total number of confirmation email dispatch failures",
		}),
		ParticipantsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campaign_participants_deleted_total",
			Help: "Total number of participants removed by admin bulk delete",
		}),
		SignupRateLimitExceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campaign_signup_rate_limited_total",
			Help: "Total number of signup requests rejected by the rate limiter",
		}),
	}
}

// IncRegistrationsCreated increments the registration counter by 1.
func (m *Metrics) IncRegistrationsCreated() {
	if m != nil {
		m.RegistrationsCreated.Inc()
	}
}

// IncRegistrationsRejected increments the rejection counter for a reason.
func (m *Metrics) IncRegistrationsRejected(reason string) {
	if m != nil {
		m.RegistrationsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncConfirmationEmailsSent() {
	if m != nil {
		m.ConfirmationEmailsSent.Inc()
	}
}

func (m *Metrics) IncConfirmationEmailsFailed() {
	if m != nil {
		m.ConfirmationEmailsFailed.Inc()
	}
}

// AddParticipantsDeleted records an admin bulk deletion.
func (m *Metrics) AddParticipantsDeleted(count int) {
	if m != nil && count > 0 {
		m.ParticipantsDeleted.Add(float64(count))
	}
}

func (m *Metrics) IncSignupRateLimitExceeded() {
	if m != nil {
		m.SignupRateLimitExceeded.Inc()
	}
}
