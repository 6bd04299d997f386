//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campaign/internal/participant/models"
	"campaign/internal/participant/store"
	"campaign/internal/platform/postgres"
	"campaign/pkg/sentinel"
	"campaign/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "participants"))
}

func newTestParticipant(email string) *models.Participant {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Participant{
		ID:            models.NewParticipantID(),
		Name:          "Maria Silva",
		Email:         email,
		Phone:         "(11) 98765-4321",
		TermsAccepted: true,
		DeviceInfo: models.DeviceInfo{
			Device:    "Desktop",
			UserAgent: "Mozilla/5.0",
		},
		ClientInfo: models.ClientInfo{
			IP:        "203.0.113.7",
			Browser:   "Chrome",
			Timestamp: now,
		},
		RegistrationDate: now,
		Status:           models.StatusActive,
	}
}

func (s *PostgresStoreSuite) TestCreateRoundTrip() {
	ctx := context.Background()
	p := newTestParticipant("maria@example.com")
	s.Require().NoError(s.store.Create(ctx, p))

	found, err := s.store.FindByEmail(ctx, "maria@example.com")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)
	s.Equal(p.Name, found.Name)
	s.Equal(p.DeviceInfo.Device, found.DeviceInfo.Device)
	s.Equal(p.ClientInfo.IP, found.ClientInfo.IP)
	s.False(found.EmailConfirmationSent)
	s.Equal(models.StatusActive, found.Status)
}

// The unique index on lower(email) is the race backstop for concurrent
// identical submissions; the store must surface it as ErrDuplicateEmail.
func (s *PostgresStoreSuite) TestUniqueConstraintViolation() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newTestParticipant("dup@example.com")))

	err := s.store.Create(ctx, newTestParticipant("DUP@Example.com"))
	s.Require().ErrorIs(err, sentinel.ErrDuplicateEmail)

	count, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresStoreSuite) TestFindByEmailIsCaseInsensitive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newTestParticipant("case@example.com")))

	found, err := s.store.FindByEmail(ctx, "CASE@EXAMPLE.COM")
	s.Require().NoError(err)
	s.Equal("case@example.com", found.Email)

	_, err = s.store.FindByEmail(ctx, "missing@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListOrdering() {
	ctx := context.Background()
	older := newTestParticipant("older@example.com")
	older.RegistrationDate = older.RegistrationDate.Add(-2 * time.Hour)
	newer := newTestParticipant("newer@example.com")

	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	listed, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("newer@example.com", listed[0].Email)
}

func (s *PostgresStoreSuite) TestSetEmailConfirmationSent() {
	ctx := context.Background()
	p := newTestParticipant("flag@example.com")
	s.Require().NoError(s.store.Create(ctx, p))

	s.Require().NoError(s.store.SetEmailConfirmationSent(ctx, p.ID))

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.True(found.EmailConfirmationSent)

	err = s.store.SetEmailConfirmationSent(ctx, models.NewParticipantID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteMany() {
	ctx := context.Background()
	a := newTestParticipant("a@example.com")
	b := newTestParticipant("b@example.com")
	s.Require().NoError(s.store.Create(ctx, a))
	s.Require().NoError(s.store.Create(ctx, b))

	deleted, err := s.store.DeleteMany(ctx, []models.ParticipantID{a.ID, models.NewParticipantID()})
	s.Require().NoError(err)
	s.Equal(1, deleted)

	count, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresStoreSuite) TestCounts() {
	ctx := context.Background()
	old := newTestParticipant("old@example.com")
	old.RegistrationDate = old.RegistrationDate.Add(-48 * time.Hour)
	today := newTestParticipant("today@example.com")
	s.Require().NoError(s.store.Create(ctx, old))
	s.Require().NoError(s.store.Create(ctx, today))
	s.Require().NoError(s.store.SetEmailConfirmationSent(ctx, today.ID))

	total, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(2, total)

	recent, err := s.store.CountRegisteredSince(ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Equal(1, recent)

	sent, err := s.store.CountEmailConfirmationSent(ctx)
	s.Require().NoError(err)
	s.Equal(1, sent)
}
