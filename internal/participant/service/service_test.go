package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campaign/internal/participant/models"
	"campaign/internal/participant/store"
	"campaign/pkg/apperr"
	"campaign/pkg/requestcontext"
	"campaign/pkg/sentinel"
)

const uaAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36"

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	sendErr   error
	verifyErr error
	sent      []*models.Participant
}

func (f *fakeMailer) SendConfirmation(_ context.Context, p *models.Participant) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, p)
	return "msg-" + p.ID.String(), nil
}

func (f *fakeMailer) Verify(context.Context) error { return f.verifyErr }

type RegistrationSuite struct {
	suite.Suite
	store   *store.InMemory
	mailer  *fakeMailer
	service *Registration
	ctx     context.Context
}

func TestRegistrationSuite(t *testing.T) {
	suite.Run(t, new(RegistrationSuite))
}

func (s *RegistrationSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.mailer = &fakeMailer{}
	s.service = NewRegistration(s.store, s.mailer, nil, nil)
	s.ctx = requestcontext.WithClientMetadata(context.Background(), "203.0.113.7", uaAndroid)
}

func validRequest() models.RegistrationRequest {
	return models.RegistrationRequest{
		Name:  "Maria Silva",
		Email: "Maria@Example.com",
		Phone: "(11) 98765-4321",
		Terms: true,
	}
}

func (s *RegistrationSuite) TestRegisterSuccess() {
	result, err := s.service.Register(s.ctx, validRequest())
	s.Require().NoError(err)

	s.Run("returns the computed result payload", func() {
		s.False(result.ID.IsZero())
		s.Equal("Mobile", result.Device)
		s.Equal("203.0.113.7", result.IP)
		s.True(result.EmailSent)
		s.False(result.Timestamp.IsZero())
	})

	s.Run("persists exactly one record with normalized fields", func() {
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)

		p, err := s.store.FindByEmail(s.ctx, "maria@example.com")
		s.Require().NoError(err)
		s.Equal("maria@example.com", p.Email)
		s.Equal("Maria Silva", p.Name)
		s.Equal(models.StatusActive, p.Status)
		s.True(p.TermsAccepted)
		s.Equal("Chrome", p.ClientInfo.Browser)
	})

	s.Run("records the confirmed send on the participant", func() {
		s.Len(s.mailer.sent, 1)
		p, err := s.store.FindByEmail(s.ctx, "maria@example.com")
		s.Require().NoError(err)
		s.True(p.EmailConfirmationSent)
	})
}

func (s *RegistrationSuite) TestRegisterValidationFailed() {
	s.Run("terms not accepted", func() {
		req := validRequest()
		req.Terms = false

		_, err := s.service.Register(s.ctx, req)
		s.Require().Error(err)
		s.True(apperr.HasCode(err, apperr.CodeValidation))
		s.Contains(err.Error(), "regulamento")
	})

	s.Run("unformatted phone", func() {
		req := validRequest()
		req.Phone = "11987654321"

		_, err := s.service.Register(s.ctx, req)
		s.Require().Error(err)
		s.True(apperr.HasCode(err, apperr.CodeValidation))
	})

	s.Run("message aggregates every violation", func() {
		_, err := s.service.Register(s.ctx, models.RegistrationRequest{
			Name: "A", Email: "bad", Phone: "123", Terms: false,
		})
		s.Require().Error(err)
		s.Contains(err.Error(), "Dados inválidos: ")
		s.Contains(err.Error(), "Nome deve ter pelo menos 2 caracteres")
		s.Contains(err.Error(), "Email inválido")
		s.Contains(err.Error(), "É necessário aceitar o regulamento")
	})

	s.Run("nothing was persisted and nothing was sent", func() {
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(0, count)
		s.Empty(s.mailer.sent)
	})
}

func (s *RegistrationSuite) TestRegisterDuplicateEmail() {
	_, err := s.service.Register(s.ctx, validRequest())
	s.Require().NoError(err)

	s.Run("same email fails with DuplicateEmail", func() {
		_, err := s.service.Register(s.ctx, validRequest())
		s.Require().Error(err)
		s.True(apperr.HasCode(err, apperr.CodeDuplicate))
	})

	s.Run("different case is still a duplicate", func() {
		req := validRequest()
		req.Email = "MARIA@EXAMPLE.COM"
		_, err := s.service.Register(s.ctx, req)
		s.Require().Error(err)
		s.True(apperr.HasCode(err, apperr.CodeDuplicate))
	})

	s.Run("store holds exactly one record for the email", func() {
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
		s.Len(s.mailer.sent, 1)
	})
}

func (s *RegistrationSuite) TestRegisterMailerFailure() {
	s.mailer.sendErr = errors.New("smtp: connection refused")

	result, err := s.service.Register(s.ctx, validRequest())

	s.Run("registration still succeeds", func() {
		s.Require().NoError(err)
		s.False(result.EmailSent)
	})

	s.Run("confirmation flag stays false", func() {
		p, err := s.store.FindByEmail(s.ctx, "maria@example.com")
		s.Require().NoError(err)
		s.False(p.EmailConfirmationSent)
	})
}

func (s *RegistrationSuite) TestRegisterDeviceInfoPrecedence() {
	s.Run("client-reported values win", func() {
		req := validRequest()
		req.DeviceInfo = &models.DeviceInfo{
			Device:           "Tablet",
			ScreenResolution: "1024x768",
			Language:         "pt-BR",
		}

		_, err := s.service.Register(s.ctx, req)
		s.Require().NoError(err)

		p, err := s.store.FindByEmail(s.ctx, "maria@example.com")
		s.Require().NoError(err)
		s.Equal("Tablet", p.DeviceInfo.Device)
		s.Equal("1024x768", p.DeviceInfo.ScreenResolution)
		s.Equal("pt-BR", p.DeviceInfo.Language)
		// Missing client fields fall back to the server-derived value.
		s.Equal(uaAndroid, p.DeviceInfo.UserAgent)
	})

	s.Run("server-derived classification still reported in the result", func() {
		req := validRequest()
		req.Email = "second@example.com"
		req.DeviceInfo = &models.DeviceInfo{Device: "Tablet"}

		result, err := s.service.Register(s.ctx, req)
		s.Require().NoError(err)
		s.Equal("Mobile", result.Device)
	})
}

func (s *RegistrationSuite) TestRegisterPinnedTime() {
	fixed := time.Date(2025, 7, 10, 12, 0, 0, 0, time.Local)
	ctx := requestcontext.WithTime(s.ctx, fixed)

	result, err := s.service.Register(ctx, validRequest())
	s.Require().NoError(err)
	s.True(result.Timestamp.Equal(fixed))
}

// racingStore simulates losing the check-then-insert race: the lookup sees
// nothing, the insert hits the unique constraint.
type racingStore struct {
	*store.InMemory
}

func (racingStore) FindByEmail(context.Context, string) (*models.Participant, error) {
	return nil, sentinel.ErrNotFound
}

func (racingStore) Create(context.Context, *models.Participant) error {
	return sentinel.ErrDuplicateEmail
}

func (s *RegistrationSuite) TestRegisterConstraintRaceMapsToDuplicate() {
	svc := NewRegistration(racingStore{s.store}, s.mailer, nil, nil)

	_, err := svc.Register(s.ctx, validRequest())
	s.Require().Error(err)
	s.True(apperr.HasCode(err, apperr.CodeDuplicate),
		"unique-constraint violation must surface as a duplicate, not an internal error")
}

func (s *RegistrationSuite) TestHealth() {
	dbOK, emailOK := s.service.Health(s.ctx)
	s.True(dbOK)
	s.True(emailOK)

	s.mailer.verifyErr = errors.New("smtp down")
	_, emailOK = s.service.Health(s.ctx)
	s.False(emailOK)
}
