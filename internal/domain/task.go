package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DueDateLayout is the wire and storage format for due dates.
const DueDateLayout = "2006-01-02"

// Status is the lifecycle state of a task.
type Status string

// Possible task status values.
const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// ParseStatus converts a string into a Status, rejecting values outside the
// closed set with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusToDo, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Priority ranks a task's importance.
type Priority string

// Possible priority values.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority converts a string into a Priority, rejecting values outside
// the closed set with ErrInvalidPriority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Recurrence is the rule by which a completed task is reborn with a new due
// date. RecurrenceNone means completion is final.
type Recurrence string

// Possible recurrence rules.
const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

// ParseRecurrence converts a string into a Recurrence, rejecting values
// outside the closed set with ErrInvalidRecurrence.
func ParseRecurrence(s string) (Recurrence, error) {
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return Recurrence(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// ParseDueDate parses a due date in DueDateLayout form.
// Returns ErrInvalidDueDate (wrapped) if the string is not a valid calendar date.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return t, nil
}

// Task is a single to-do item owned by a user.
//
// DueDate is carried in its YYYY-MM-DD wire form rather than as a time.Time:
// the recurrence rollover must be able to observe a stored date that does
// not parse and fail closed, which a parsed representation cannot express.
//
// Field order (ID, Owner, Title, Status, DueDate, Favorite, Category,
// Priority, Recurrence) is the export contract consumed by external
// renderers and must not be reordered.
type Task struct {
	ID         uuid.UUID  `json:"id"`
	Owner      string     `json:"owner"`
	Title      string     `json:"title"`
	Status     Status     `json:"status"`
	DueDate    string     `json:"due_date"`
	Favorite   bool       `json:"favorite"`
	Category   string     `json:"category"`
	Priority   Priority   `json:"priority"`
	Recurrence Recurrence `json:"recurrence"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given username.
// It generates a new UUID and sets the creation/update timestamps.
// Returns a validation error if any field is invalid.
func NewTask(
	owner, title string,
	status Status,
	dueDate string,
	favorite bool,
	category string,
	priority Priority,
	recurrence Recurrence,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:         uuid.New(),
		Owner:      owner,
		Title:      strings.TrimSpace(title),
		Status:     status,
		DueDate:    dueDate,
		Favorite:   favorite,
		Category:   strings.TrimSpace(category),
		Priority:   priority,
		Recurrence: recurrence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's invariants: non-empty owner and title, a due
// date that parses as a calendar date, and enum fields within their closed
// sets. Returns the first violation found.
func (t *Task) Validate() error {
	if t.Owner == "" {
		return ErrEmptyOwner
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}

	if _, err := ParseDueDate(t.DueDate); err != nil {
		return err
	}

	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if _, err := ParseRecurrence(string(t.Recurrence)); err != nil {
		return err
	}

	return nil
}

// IsRecurring reports whether completing the task should schedule a new
// occurrence instead of leaving it Done.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != RecurrenceNone && t.Recurrence != ""
}
