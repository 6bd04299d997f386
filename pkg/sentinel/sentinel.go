package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and transport clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrDuplicateEmail: a record with the same normalized email already exists
// - ErrUnavailable: store or transport temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/apperr directly.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrUnavailable    = errors.New("unavailable")
)
