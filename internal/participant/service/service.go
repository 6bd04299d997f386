// Package service orchestrates the registration workflow and the admin
// query operations over the participant collection.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"campaign/internal/participant/models"
	"campaign/internal/participant/store"
	"campaign/internal/participant/useragent"
	"campaign/internal/participant/validate"
	"campaign/internal/platform/metrics"
	"campaign/pkg/apperr"
	"campaign/pkg/requestcontext"
	"campaign/pkg/sentinel"
)

// Mailer dispatches the confirmation message. The dispatch outcome is
// advisory: registration success never depends on it.
type Mailer interface {
	SendConfirmation(ctx context.Context, p *models.Participant) (string, error)
	Verify(ctx context.Context) error
}

// Registration runs the signup intake: normalize, validate, dedupe, persist,
// then best-effort confirmation dispatch with the follow-up flag update.
type Registration struct {
	store   store.Store
	mailer  Mailer
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRegistration(st store.Store, mailer Mailer, logger *slog.Logger, m *metrics.Metrics) *Registration {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registration{store: st, mailer: mailer, logger: logger, metrics: m}
}

// Register handles one signup. The caller's IP and User-Agent travel in ctx
// (set by the middleware chain, or injected directly in tests).
//
// The duplicate lookup and the insert are not atomic: two concurrent
// submissions of the same email can both pass the lookup. The store's unique
// constraint is the backstop, and its violation maps to the same
// CodeDuplicate outcome.
func (r *Registration) Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationResult, error) {
	clientIP := requestcontext.ClientIP(ctx)
	ua := requestcontext.UserAgent(ctx)
	if ua == "" {
		ua = useragent.BrowserUnknown
	}
	device := useragent.Device(ua)
	browser := useragent.Browser(ua)
	now := requestcontext.Now(ctx)

	if violations := validate.Registration(req.Name, req.Email, req.Phone, req.Terms); len(violations) > 0 {
		r.metrics.IncRegistrationsRejected("validation")
		return nil, apperr.New(apperr.CodeValidation,
			"Dados inválidos: "+strings.Join(violations, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := r.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		r.metrics.IncRegistrationsRejected("duplicate")
		return nil, apperr.New(apperr.CodeDuplicate, "Este email já está cadastrado na promoção.")
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, apperr.Wrap(err, apperr.CodeInternal, "duplicate check failed")
	}

	p := &models.Participant{
		ID:            models.NewParticipantID(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		TermsAccepted: req.Terms,
		DeviceInfo: models.DeviceInfo{
			Device:    device,
			UserAgent: ua,
		},
		ClientInfo: models.ClientInfo{
			IP:        clientIP,
			Browser:   browser,
			Timestamp: now,
		},
		RegistrationDate: now,
		Status:           models.StatusActive,
	}
	// Client-reported device info wins over the server-derived values.
	if req.DeviceInfo != nil {
		if req.DeviceInfo.Device != "" {
			p.DeviceInfo.Device = req.DeviceInfo.Device
		}
		if req.DeviceInfo.UserAgent != "" {
			p.DeviceInfo.UserAgent = req.DeviceInfo.UserAgent
		}
		p.DeviceInfo.ScreenResolution = req.DeviceInfo.ScreenResolution
		p.DeviceInfo.Language = req.DeviceInfo.Language
	}

	if err := r.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrDuplicateEmail) {
			// Lost the check-then-insert race; same outcome as the lookup hit.
			r.metrics.IncRegistrationsRejected("duplicate")
			return nil, apperr.New(apperr.CodeDuplicate, "Este email já está cadastrado na promoção.")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "persist participant")
	}
	r.metrics.IncRegistrationsCreated()

	r.logger.Info("participant registered",
		"id", p.ID.String(),
		"name", p.Name,
		"email", p.Email,
		"phone", p.Phone,
		"ip", clientIP,
		"device", device,
		"browser", browser,
		"registered_at", now,
		"user_agent", ua,
	)

	emailSent := r.dispatchConfirmation(ctx, p)

	return &models.RegistrationResult{
		ID:        p.ID,
		Timestamp: p.RegistrationDate,
		Device:    device,
		IP:        clientIP,
		EmailSent: emailSent,
	}, nil
}

// dispatchConfirmation sends the confirmation email and records the outcome.
// Failures never propagate: the durable emailConfirmationSent=false flag is
// the queryable signal, plus a log line for operators.
func (r *Registration) dispatchConfirmation(ctx context.Context, p *models.Participant) bool {
	messageID, err := r.mailer.SendConfirmation(ctx, p)
	if err != nil {
		r.metrics.IncConfirmationEmailsFailed()
		r.logger.Error("confirmation email failed",
			"id", p.ID.String(),
			"email", p.Email,
			"error", err.Error(),
		)
		return false
	}

	r.metrics.IncConfirmationEmailsSent()
	r.logger.Info("confirmation email sent",
		"id", p.ID.String(),
		"email", p.Email,
		"message_id", messageID,
	)

	if err := r.store.SetEmailConfirmationSent(ctx, p.ID); err != nil {
		// The send happened; only the flag write failed. Surfacing this as a
		// registration failure would be worse than an understated flag.
		r.logger.Error("failed to record confirmation flag",
			"id", p.ID.String(),
			"error", err.Error(),
		)
	}
	return true
}

// Health probes the store and mail transport for the liveness endpoint.
func (r *Registration) Health(ctx context.Context) (dbOK, emailOK bool) {
	dbOK = r.store.Ping(ctx) == nil
	emailOK = r.mailer.Verify(ctx) == nil
	return dbOK, emailOK
}
