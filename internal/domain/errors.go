package domain

import "errors"

// Error kinds. Every error leaving a component wraps one of these so
// callers can branch with errors.Is without depending on error text.
var (
	// ErrValidation covers malformed user input: bad time format, empty
	// batch, too-short transcript. Always recoverable by re-prompting.
	ErrValidation = errors.New("validation error")

	// ErrClassification means the external classification call failed or
	// its reply was unparseable. Recoverable: fall back to manual entry.
	ErrClassification = errors.New("classification error")

	// ErrPersistence means a backend append failed. The current batch
	// attempt is over; rows written before the failure stay written.
	ErrPersistence = errors.New("persistence error")

	// ErrScheduler means reminder registration failed. It never
	// invalidates an already-successful persistence result.
	ErrScheduler = errors.New("scheduler error")
)
