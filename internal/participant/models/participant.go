package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ParticipantID uniquely identifies a registrant record.
type ParticipantID uuid.UUID

func NewParticipantID() ParticipantID { return ParticipantID(uuid.New()) }

func (id ParticipantID) String() string { return uuid.UUID(id).String() }

func (id ParticipantID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseParticipantID parses the string form of a participant ID.
func ParseParticipantID(s string) (ParticipantID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ParticipantID{}, fmt.Errorf("parse participant id: %w", err)
	}
	return ParticipantID(u), nil
}

func (id ParticipantID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ParticipantID) UnmarshalText(b []byte) error {
	parsed, err := ParseParticipantID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Status is the administrative state of a participant. It defaults to active
// and is only ever changed by operator action; no public endpoint mutates it.
type Status string

const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusDisqualified Status = "disqualified"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDisqualified:
		return true
	}
	return false
}

// DeviceInfo is the client-reported device sub-record. Unvalidated, advisory
// only; server-derived values fill the gaps when the client omits fields.
type DeviceInfo struct {
	Device           string `json:"device"`
	UserAgent        string `json:"userAgent"`
	ScreenResolution string `json:"screenResolution,omitempty"`
	Language         string `json:"language,omitempty"`
}

// ClientInfo is the server-observed sub-record captured at registration time.
type ClientInfo struct {
	IP        string    `json:"ip"`
	Browser   string    `json:"browser"`
	Timestamp time.Time `json:"timestamp"`
}

// Participant is the sole entity of the campaign: one registrant record.
//
// Invariants:
//   - Email is globally unique, compared case-insensitively
//   - TermsAccepted is true for every persisted record
//   - RegistrationDate is immutable after creation
//   - EmailConfirmationSent only transitions false to true, never back
type Participant struct {
	ID                    ParticipantID `json:"id"`
	Name                  string        `json:"name"`
	Email                 string        `json:"email"`
	Phone                 string        `json:"phone"`
	TermsAccepted         bool          `json:"termsAccepted"`
	DeviceInfo            DeviceInfo    `json:"deviceInfo"`
	ClientInfo            ClientInfo    `json:"clientInfo"`
	RegistrationDate      time.Time     `json:"registrationDate"`
	EmailConfirmationSent bool          `json:"emailConfirmationSent"`
	Status                Status        `json:"status"`
}
