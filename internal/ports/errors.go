package ports

import "errors"

// Sentinel errors for the precondition and infrastructure error classes of
// §7 that are not owned by internal/action or internal/temporal.
var (
	ErrFarmNotFound        = errors.New("Farm does not exist")
	ErrNotOwner            = errors.New("sender does not own this farm")
	ErrBadSignature        = errors.New("signature verification failed")
	ErrNotWhitelisted      = errors.New("address is not whitelisted for sync")
	ErrSessionConflict     = errors.New("Concurrent save detected")
	ErrExternalUnavailable = errors.New("external dependency unavailable")
)
