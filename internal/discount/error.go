package discount

import "errors"

var (
	// ErrNoActivePolicy is returned by the repository when no active row exists.
	ErrNoActivePolicy = errors.New("no active max discount")

	ErrFailedGetPolicy    = errors.New("failed to get max discount")
	ErrFailedUpsertPolicy = errors.New("failed to save max discount")
)
