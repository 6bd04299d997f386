package models

import "time"

// RegistrationResult is what the service hands back on a successful signup.
// EmailSent reflects the notification outcome; it never affects success.
type RegistrationResult struct {
	ID        ParticipantID `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Device    string        `json:"device"`
	IP        string        `json:"ip"`
	EmailSent bool          `json:"emailSent"`
}

// Stats are the admin dashboard aggregates. ConversionRate is a percentage
// rounded to two decimals, zero when the store is empty.
type Stats struct {
	TotalParticipants int     `json:"totalParticipants"`
	TodayParticipants int     `json:"todayParticipants"`
	EmailsSent        int     `json:"emailsSent"`
	ConversionRate    float64 `json:"conversionRate"`
}

// RegistrationResponse is the POST /participar envelope.
type RegistrationResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *RegistrationResult `json:"data,omitempty"`
}

// ListResponse is the GET /api/participants envelope.
type ListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []Participant `json:"data"`
}

// StatsResponse is the GET /api/stats envelope.
type StatsResponse struct {
	Success bool  `json:"success"`
	Data    Stats `json:"data"`
}

// StatusResponse is the GET /api/status liveness payload.
type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Email     string    `json:"email"`
}

// DeleteResponse is the POST /api/participants/delete envelope.
type DeleteResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}

// ErrorResponse is the stable failure envelope shared by every endpoint, so
// clients never parse error-specific schemas.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
