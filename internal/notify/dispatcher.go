package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/service"
)

// TaskSource lists the tasks due on a given date across all owners.
// service.TaskService satisfies this interface.
type TaskSource interface {
	DueOn(ctx context.Context, dueDate string) ([]domain.Task, error)
}

// ContactSource resolves an owner's contact details.
// service.UserService satisfies this interface.
type ContactSource interface {
	GetContactInfo(ctx context.Context, username string) (service.ContactInfo, error)
}

// SweepReport summarizes one completed reminder sweep.
type SweepReport struct {
	DueDate     string `json:"due_date"`
	TasksDue    int    `json:"tasks_due"`
	EmailsSent  int    `json:"emails_sent"`
	PushesSent  int    `json:"pushes_sent"`
	Failures    int    `json:"failures"`
	Unreachable int    `json:"unreachable"` // owners whose contact info could not be resolved
}

// Dispatcher runs the due-task reminder sweep. Either sender may be
// nil, which disables that channel for the whole sweep.
type Dispatcher struct {
	tasks    TaskSource
	contacts ContactSource
	email    EmailSender
	push     PushSender
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher with the given sources and
// senders. It returns an error if either source or the logger is nil.
func NewDispatcher(
	tasks TaskSource,
	contacts ContactSource,
	email EmailSender,
	push PushSender,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task source cannot be nil")
	}
	if contacts == nil {
		return nil, fmt.Errorf("contact source cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &Dispatcher{
		tasks:    tasks,
		contacts: contacts,
		email:    email,
		push:     push,
		logger:   logger.With("component", "reminder_dispatcher"),
	}, nil
}

// DispatchDueReminders sweeps every task due on the given date and
// attempts delivery on each configured channel. Channel failures are
// logged and counted but never abort the sweep; the only fatal error
// is failing to list the due tasks in the first place.
func (d *Dispatcher) DispatchDueReminders(ctx context.Context, dueDate string) (SweepReport, error) {
	report := SweepReport{DueDate: dueDate}

	due, err := d.tasks.DueOn(ctx, dueDate)
	if err != nil {
		return report, fmt.Errorf("listing tasks due on %s: %w", dueDate, err)
	}
	report.TasksDue = len(due)

	d.logger.Info("starting reminder sweep",
		"due_date", dueDate,
		"tasks_due", len(due))

	for i := range due {
		d.dispatchOne(ctx, &due[i], &report)
	}

	d.logger.Info("reminder sweep complete",
		"due_date", dueDate,
		"tasks_due", report.TasksDue,
		"emails_sent", report.EmailsSent,
		"pushes_sent", report.PushesSent,
		"failures", report.Failures,
		"unreachable", report.Unreachable)

	return report, nil
}

// dispatchOne attempts delivery of one task's reminder on every
// configured channel. Each channel's attempt is independent.
func (d *Dispatcher) dispatchOne(ctx context.Context, task *domain.Task, report *SweepReport) {
	contact, err := d.contacts.GetContactInfo(ctx, task.Owner)
	if err != nil {
		report.Unreachable++
		d.logger.Error("failed to resolve contact info for task owner",
			"owner", task.Owner,
			"task_id", task.ID,
			"error", err)
		return
	}

	if d.email != nil && contact.Email != "" {
		if err := d.email.SendDueReminder(ctx, contact.Email, task.Title); err != nil {
			report.Failures++
			delivery := &DeliveryError{Channel: ChannelEmail, Owner: task.Owner, Err: err}
			d.logger.Error("reminder delivery failed",
				"channel", ChannelEmail,
				"owner", task.Owner,
				"task_id", task.ID,
				"error", delivery)
		} else {
			report.EmailsSent++
		}
	}

	if d.push != nil && contact.PushKey != "" {
		if err := d.push.SendDueReminder(ctx, contact.PushKey, task.Owner, task.Title); err != nil {
			report.Failures++
			delivery := &DeliveryError{Channel: ChannelPush, Owner: task.Owner, Err: err}
			d.logger.Error("reminder delivery failed",
				"channel", ChannelPush,
				"owner", task.Owner,
				"task_id", task.ID,
				"error", delivery)
		} else {
			report.PushesSent++
		}
	}
}
