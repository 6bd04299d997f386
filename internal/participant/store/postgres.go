package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"campaign/internal/participant/models"
	"campaign/pkg/sentinel"
)

// pqUniqueViolation is the Postgres error code for a unique constraint hit.
const pqUniqueViolation = "23505"

// Postgres persists participant records in PostgreSQL. The unique index on
// lower(email) is the authoritative duplicate-email backstop.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed participant store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const participantColumns = `
	id, name, email, phone, terms_accepted,
	device, device_user_agent, screen_resolution, language,
	client_ip, client_browser, client_timestamp,
	registration_date, email_confirmation_sent, status
`

func (s *Postgres) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (` + participantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID), p.Name, p.Email, p.Phone, p.TermsAccepted,
		p.DeviceInfo.Device, p.DeviceInfo.UserAgent, p.DeviceInfo.ScreenResolution, p.DeviceInfo.Language,
		p.ClientInfo.IP, p.ClientInfo.Browser, p.ClientInfo.Timestamp,
		p.RegistrationDate, p.EmailConfirmationSent, p.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("create participant: %w", sentinel.ErrDuplicateEmail)
		}
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE lower(email) = lower($1)`
	p, err := scanParticipant(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find participant by email: %w", err)
	}
	return p, nil
}

func (s *Postgres) FindByID(ctx context.Context, id models.ParticipantID) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	p, err := scanParticipant(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find participant by id: %w", err)
	}
	return p, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY registration_date DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func (s *Postgres) SetEmailConfirmationSent(ctx context.Context, id models.ParticipantID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE participants SET email_confirmation_sent = TRUE WHERE id = $1`,
		uuid.UUID(id),
	)
	if err != nil {
		return fmt.Errorf("set email confirmation sent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set email confirmation sent: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteMany(ctx context.Context, ids []models.ParticipantID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		raw[i] = uuid.UUID(id)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM participants WHERE id = ANY($1)`,
		pq.Array(raw),
	)
	if err != nil {
		return 0, fmt.Errorf("delete participants: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete participants: %w", err)
	}
	return int(affected), nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	return s.countWhere(ctx, `SELECT COUNT(*) FROM participants`)
}

func (s *Postgres) CountRegisteredSince(ctx context.Context, since time.Time) (int, error) {
	return s.countWhere(ctx, `SELECT COUNT(*) FROM participants WHERE registration_date >= $1`, since)
}

func (s *Postgres) CountEmailConfirmationSent(ctx context.Context) (int, error) {
	return s.countWhere(ctx, `SELECT COUNT(*) FROM participants WHERE email_confirmation_sent`)
}

func (s *Postgres) countWhere(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	var (
		p   models.Participant
		id  uuid.UUID
		sts string
	)
	err := row.Scan(
		&id, &p.Name, &p.Email, &p.Phone, &p.TermsAccepted,
		&p.DeviceInfo.Device, &p.DeviceInfo.UserAgent, &p.DeviceInfo.ScreenResolution, &p.DeviceInfo.Language,
		&p.ClientInfo.IP, &p.ClientInfo.Browser, &p.ClientInfo.Timestamp,
		&p.RegistrationDate, &p.EmailConfirmationSent, &sts,
	)
	if err != nil {
		return nil, err
	}
	p.ID = models.ParticipantID(id)
	p.Status = models.Status(sts)
	return &p, nil
}
