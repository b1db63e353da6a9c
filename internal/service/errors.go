package service

import "errors"

// Service-level errors surfaced to callers.
var (
	// ErrInvalidCredentials is returned when authentication fails, whether
	// the username is unknown or the password does not match. The two cases
	// are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRolloverFailed is returned when a recurring task reached Done but
	// its stored due date could not be advanced. The Done status write has
	// already committed by then; the task stays Done with its date
	// unchanged rather than being silently rescheduled off-cycle.
	ErrRolloverFailed = errors.New("recurrence rollover failed")
)
