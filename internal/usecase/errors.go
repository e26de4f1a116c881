package usecase

import "errors"

// Sentinel errors returned by the services. Handlers map these onto
// HTTP statuses; wrap with fmt.Errorf("%w: detail", ...) to add
// context without losing the class.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnknownSport          = errors.New("unknown sport")
	ErrAlreadyExists         = errors.New("already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
