// Package recur computes the next occurrence of a recurring task.
//
// The functions here are pure: no I/O, no clock access, deterministic given
// their inputs. The task service calls into this package when a recurring
// task is marked done and needs its due date advanced.
package recur

import (
	"time"

	"github.com/phrazzld/remind-api/internal/domain"
)

// monthlyIntervalDays is the fixed offset used for monthly recurrence.
//
// Monthly advancement is a fixed 30-day interval, not calendar-month
// arithmetic: a task due 2025-03-01 rolls to 2025-03-31, not 2025-04-01.
// This matches the established schedule behavior that existing recurring
// tasks depend on; changing it to AddDate(0, 1, 0) would silently shift
// every monthly task's cadence.
const monthlyIntervalDays = 30

// NextOccurrence returns the due date of the next occurrence of a task
// under the given recurrence rule.
//
// RecurrenceNone returns the input unchanged: non-recurring tasks have no
// next occurrence, and calling this for one is a safe no-op.
func NextOccurrence(rule domain.Recurrence, due time.Time) time.Time {
	switch rule {
	case domain.RecurrenceDaily:
		return due.AddDate(0, 0, 1)
	case domain.RecurrenceWeekly:
		return due.AddDate(0, 0, 7)
	case domain.RecurrenceMonthly:
		return due.AddDate(0, 0, monthlyIntervalDays)
	default:
		return due
	}
}

// Advance applies NextOccurrence to a due date in its YYYY-MM-DD wire form.
// Returns domain.ErrInvalidDueDate (wrapped) if the stored date does not
// parse, so callers can fail closed instead of desynchronizing the schedule.
func Advance(rule domain.Recurrence, dueDate string) (string, error) {
	due, err := domain.ParseDueDate(dueDate)
	if err != nil {
		return "", err
	}
	return NextOccurrence(rule, due).Format(domain.DueDateLayout), nil
}
