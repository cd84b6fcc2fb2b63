package domain

import "errors"

// Error taxonomy for the voting core. Every engine failure maps onto one of
// these sentinels; callers match with errors.Is.
var (
	// ErrNotFound is returned when a record vanished or never existed
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on a duplicate curation attempt
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidArgument is returned for malformed input (empty poll options, blank titles)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied is raised by the caller-side authorization layer, never by the engines
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAborted is returned when a transactional conflict survived all store retries
	ErrAborted = errors.New("transaction aborted after retries")
)
