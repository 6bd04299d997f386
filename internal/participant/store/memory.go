package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campaign/internal/participant/models"
	"campaign/pkg/sentinel"
)

// InMemory is a mutex-guarded map store. It mirrors the Postgres store's
// contract so it can back unit tests and a zero-dependency dev mode.
type InMemory struct {
	mu      sync.RWMutex
	records map[models.ParticipantID]*models.Participant
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[models.ParticipantID]*models.Participant)}
}

func (s *InMemory) Create(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(p.Email))
	for _, existing := range s.records {
		if strings.ToLower(existing.Email) == email {
			return sentinel.ErrDuplicateEmail
		}
	}

	clone := *p
	s.records[p.ID] = &clone
	return nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range s.records {
		if strings.ToLower(p.Email) == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByID(_ context.Context, id models.ParticipantID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *InMemory) List(_ context.Context) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Participant, 0, len(s.records))
	for _, p := range s.records {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})
	return out, nil
}

func (s *InMemory) SetEmailConfirmationSent(_ context.Context, id models.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.records[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.EmailConfirmationSent = true
	return nil
}

func (s *InMemory) DeleteMany(_ context.Context, ids []models.ParticipantID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if _, ok := s.records[id]; ok {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *InMemory) CountRegisteredSince(_ context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, p := range s.records {
		if !p.RegistrationDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) CountEmailConfirmationSent(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, p := range s.records {
		if p.EmailConfirmationSent {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) Ping(_ context.Context) error { return nil }
