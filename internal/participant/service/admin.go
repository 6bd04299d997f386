package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"campaign/internal/participant/models"
	"campaign/internal/participant/store"
	"campaign/internal/platform/metrics"
	"campaign/pkg/apperr"
	"campaign/pkg/requestcontext"
)

const dateOnly = "2006-01-02"

// Admin serves the operator dashboard: listing, filtering, aggregates,
// CSV export, and bulk deletion.
type Admin struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewAdmin(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Admin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{store: st, logger: logger, metrics: m}
}

// List returns the participants matching filter. Predicates are a logical
// AND; an empty filter returns everything. Default order is registration
// date descending; an explicit SortBy overrides it.
func (a *Admin) List(ctx context.Context, filter models.Filter) ([]models.Participant, error) {
	all, err := a.store.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "list participants")
	}

	filtered := make([]models.Participant, 0, len(all))
	for _, p := range all {
		if matches(p, filter) {
			filtered = append(filtered, p)
		}
	}

	if filter.SortBy != "" {
		sortParticipants(filtered, filter.SortBy, filter.SortDir)
	}
	return filtered, nil
}

func matches(p models.Participant, f models.Filter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Email), needle) &&
			!strings.Contains(strings.ToLower(p.Phone), needle) {
			return false
		}
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Device != "" && p.DeviceInfo.Device != f.Device {
		return false
	}
	if f.Date != "" && p.RegistrationDate.Local().Format(dateOnly) != f.Date {
		return false
	}
	return true
}

// sortParticipants orders by the named field with a stable three-way
// comparator. Date-typed fields compare as instants, not strings.
func sortParticipants(items []models.Participant, field string, dir models.SortDirection) {
	sign := 1
	if dir == models.SortDesc {
		sign = -1
	}
	sort.SliceStable(items, func(i, j int) bool {
		return sign*compareBy(items[i], items[j], field) < 0
	})
}

func compareBy(a, b models.Participant, field string) int {
	switch field {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "phone":
		return strings.Compare(a.Phone, b.Phone)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "device":
		return strings.Compare(a.DeviceInfo.Device, b.DeviceInfo.Device)
	default: // registrationDate and anything unrecognized
		return a.RegistrationDate.Compare(b.RegistrationDate)
	}
}

// Paginate slices items for a 1-indexed page, clipping to the available
// range. Out-of-range pages yield an empty slice, never an error.
func Paginate(items []models.Participant, page, pageSize int) []models.Participant {
	if page < 1 || pageSize < 1 {
		return []models.Participant{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.Participant{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Stats computes the dashboard aggregates. "Today" counts from local
// midnight of the request clock; the conversion rate is zero on an empty
// store.
func (a *Admin) Stats(ctx context.Context) (*models.Stats, error) {
	total, err := a.store.Count(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "count participants")
	}

	now := requestcontext.Now(ctx)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := a.store.CountRegisteredSince(ctx, midnight)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "count today's participants")
	}

	sent, err := a.store.CountEmailConfirmationSent(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "count sent confirmations")
	}

	var rate float64
	if total > 0 {
		rate = math.Round(float64(sent)/float64(total)*100*100) / 100
	}
	return &models.Stats{
		TotalParticipants: total,
		TodayParticipants: today,
		EmailsSent:        sent,
		ConversionRate:    rate,
	}, nil
}

// DeleteMany removes the records whose ids were given and reports how many
// actually existed. An empty id set is a client error, not a no-op.
func (a *Admin) DeleteMany(ctx context.Context, ids []models.ParticipantID) (int, error) {
	if len(ids) == 0 {
		return 0, apperr.New(apperr.CodeBadRequest, "IDs inválidos fornecidos")
	}
	deleted, err := a.store.DeleteMany(ctx, ids)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeInternal, "delete participants")
	}
	a.metrics.AddParticipantsDeleted(deleted)
	a.logger.Info("participants deleted by admin", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}
