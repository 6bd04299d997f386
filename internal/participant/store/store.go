// Package store persists participant records. Implementations return
// pkg/sentinel errors for infrastructure facts; the service layer translates
// them into coded domain errors.
package store

import (
	"context"
	"time"

	"campaign/internal/participant/models"
)

// Store is the participant record persistence contract.
//
// Create enforces the case-insensitive email uniqueness invariant and returns
// sentinel.ErrDuplicateEmail when it would be violated. This is the authoritative
// backstop for the service's check-then-insert sequence: concurrent identical
// submissions may both pass the lookup, but only one insert can succeed.
type Store interface {
	Create(ctx context.Context, p *models.Participant) error

	// FindByEmail looks up a record by normalized (lowercase, trimmed) email.
	// Returns sentinel.ErrNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*models.Participant, error)

	FindByID(ctx context.Context, id models.ParticipantID) (*models.Participant, error)

	// List returns every record ordered by registration date descending.
	List(ctx context.Context) ([]models.Participant, error)

	// SetEmailConfirmationSent flips the flag to true. The flag never
	// transitions back; callers only invoke this after a confirmed send.
	SetEmailConfirmationSent(ctx context.Context, id models.ParticipantID) error

	// DeleteMany removes the records whose IDs are in the set and reports how
	// many were actually removed. Unknown IDs are not an error.
	DeleteMany(ctx context.Context, ids []models.ParticipantID) (int, error)

	Count(ctx context.Context) (int, error)
	CountRegisteredSince(ctx context.Context, since time.Time) (int, error)
	CountEmailConfirmationSent(ctx context.Context) (int, error)

	// Ping reports store connectivity for the liveness probe.
	Ping(ctx context.Context) error
}
