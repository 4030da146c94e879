package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the cache client and other
// infrastructure layers return these (optionally wrapped) so services can
// translate them into domain errors.
//
//   - ErrNotFound: record or cache key does not exist
//   - ErrConflict: a unique field (plugin uid) is already taken
//   - ErrUnavailable: Redis or PostgreSQL did not answer at startup
//
// Validation failures use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
