package domain

import "errors"

// Common validation errors surfaced to callers. These are never silently
// dropped; the service layer rejects the operation before any write.
var (
	// ErrEmptyTitle is returned when a task title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrInvalidDueDate is returned when a due date is not a valid
	// calendar date in YYYY-MM-DD form.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrInvalidStatus is returned when a status string is not one of the
	// closed set of task statuses.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned when a priority string is not one of
	// the closed set of priorities.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidRecurrence is returned when a recurrence rule string is not
	// one of the closed set of recurrence rules.
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")

	// ErrEmptyOwner is returned when a task has no owner username.
	ErrEmptyOwner = errors.New("task owner cannot be empty")

	// ErrEmptyUsername is returned when a username is empty.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyEmail is returned when an email address is empty.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")

	// ErrEmptyPassword is returned when neither a plaintext nor a hashed
	// password is present on a user.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
