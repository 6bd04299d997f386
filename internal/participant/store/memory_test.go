package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campaign/internal/participant/models"
	"campaign/pkg/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) newParticipant(email string) *models.Participant {
	return &models.Participant{
		ID:               models.NewParticipantID(),
		Name:             "Maria Silva",
		Email:            email,
		Phone:            "(11) 98765-4321",
		TermsAccepted:    true,
		RegistrationDate: time.Now(),
		Status:           models.StatusActive,
	}
}

func (s *InMemoryStoreSuite) TestCreateAndLookups() {
	s.Run("creates and finds by email", func() {
		p := s.newParticipant("maria@example.com")
		s.Require().NoError(s.store.Create(s.ctx, p))

		found, err := s.store.FindByEmail(s.ctx, "maria@example.com")
		s.Require().NoError(err)
		s.Equal(p.ID, found.ID)
	})

	s.Run("email lookup is case-insensitive", func() {
		found, err := s.store.FindByEmail(s.ctx, "MARIA@EXAMPLE.COM")
		s.Require().NoError(err)
		s.Equal("maria@example.com", found.Email)
	})

	s.Run("returns ErrNotFound for unknown email", func() {
		_, err := s.store.FindByEmail(s.ctx, "nobody@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, models.NewParticipantID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestEmailUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, s.newParticipant("dup@example.com")))

	s.Run("rejects duplicate email", func() {
		err := s.store.Create(s.ctx, s.newParticipant("dup@example.com"))
		s.Require().ErrorIs(err, sentinel.ErrDuplicateEmail)
	})

	s.Run("enforces case-insensitive uniqueness", func() {
		err := s.store.Create(s.ctx, s.newParticipant("DUP@example.com"))
		s.Require().ErrorIs(err, sentinel.ErrDuplicateEmail)
	})

	s.Run("store keeps exactly one record for the email", func() {
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
	})
}

func (s *InMemoryStoreSuite) TestListOrdering() {
	older := s.newParticipant("older@example.com")
	older.RegistrationDate = time.Now().Add(-2 * time.Hour)
	newer := s.newParticipant("newer@example.com")

	s.Require().NoError(s.store.Create(s.ctx, older))
	s.Require().NoError(s.store.Create(s.ctx, newer))

	listed, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("newer@example.com", listed[0].Email)
	s.Equal("older@example.com", listed[1].Email)
}

func (s *InMemoryStoreSuite) TestSetEmailConfirmationSent() {
	p := s.newParticipant("flag@example.com")
	s.Require().NoError(s.store.Create(s.ctx, p))

	s.Run("flips the flag to true", func() {
		s.Require().NoError(s.store.SetEmailConfirmationSent(s.ctx, p.ID))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.True(found.EmailConfirmationSent)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		err := s.store.SetEmailConfirmationSent(s.ctx, models.NewParticipantID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestDeleteMany() {
	a := s.newParticipant("a@example.com")
	b := s.newParticipant("b@example.com")
	s.Require().NoError(s.store.Create(s.ctx, a))
	s.Require().NoError(s.store.Create(s.ctx, b))

	s.Run("counts only records that existed", func() {
		deleted, err := s.store.DeleteMany(s.ctx, []models.ParticipantID{a.ID, models.NewParticipantID()})
		s.Require().NoError(err)
		s.Equal(1, deleted)
	})

	s.Run("deleted record is gone", func() {
		_, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestCounts() {
	old := s.newParticipant("old@example.com")
	old.RegistrationDate = time.Now().Add(-48 * time.Hour)
	today := s.newParticipant("today@example.com")
	today.EmailConfirmationSent = true

	s.Require().NoError(s.store.Create(s.ctx, old))
	s.Require().NoError(s.store.Create(s.ctx, today))

	midnight := time.Now().Add(-time.Hour)

	total, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, total)

	recent, err := s.store.CountRegisteredSince(s.ctx, midnight)
	s.Require().NoError(err)
	s.Equal(1, recent)

	sent, err := s.store.CountEmailConfirmationSent(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, sent)
}
