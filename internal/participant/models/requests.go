package models

// RegistrationRequest is the POST /participar payload. DeviceInfo is optional
// and client-reported; server-derived values are used where it is empty.
type RegistrationRequest struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Terms      bool        `json:"terms"`
	DeviceInfo *DeviceInfo `json:"deviceInfo,omitempty"`
}

// DeleteRequest is the POST /api/participants/delete payload.
type DeleteRequest struct {
	IDs []ParticipantID `json:"ids"`
}

// SortDirection orders admin listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Filter is the conjunction of optional admin list predicates. Zero values
// mean "no constraint"; combined predicates are a logical AND.
type Filter struct {
	// Search matches case-insensitively as a substring of name, email or phone.
	Search string
	// Status matches exactly when non-empty.
	Status Status
	// Device matches the device classification exactly when non-empty.
	Device string
	// Date restricts to records registered on that calendar day (local time).
	Date string // "2006-01-02"

	// SortBy selects the comparison field; empty means registration date
	// descending. SortDir defaults to ascending when SortBy is set.
	SortBy  string
	SortDir SortDirection
}
