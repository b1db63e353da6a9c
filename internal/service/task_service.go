package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/domain/recur"
	"github.com/phrazzld/remind-api/internal/store"
)

// TaskService provides task CRUD, search, and the status transition that
// drives the recurrence state machine:
//
//	ToDo/InProgress --(SetStatus Done)--> Done
//	Done + recurrence != None          --> ToDo with advanced due date
//
// Explicit Update calls move freely between statuses; only SetStatus
// triggers the rollover.
type TaskService interface {
	// Add validates and persists a new task for the owner.
	// Returns domain.ErrEmptyTitle or domain.ErrInvalidDueDate (among other
	// validation errors) without writing anything.
	Add(
		ctx context.Context,
		owner, title string,
		status domain.Status,
		dueDate string,
		favorite bool,
		category string,
		priority domain.Priority,
		recurrence domain.Recurrence,
	) (*domain.Task, error)

	// Get retrieves a task by ID. Returns store.ErrTaskNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves the owner's tasks in insertion order.
	List(ctx context.Context, owner string) ([]domain.Task, error)

	// Update validates and replaces a task's mutable fields.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns the owner's tasks matching the query as a
	// case-insensitive substring of title, due date, or status.
	Search(ctx context.Context, owner, query string) ([]domain.Task, error)

	// DueOn returns tasks due on the given YYYY-MM-DD date across all
	// owners, for the reminder sweep.
	DueOn(ctx context.Context, dueDate string) ([]domain.Task, error)

	// SetStatus writes the new status and, when it is Done on a recurring
	// task, advances the due date and resets status to ToDo in the same
	// transaction. If the stored due date cannot be parsed, the Done write
	// still commits and ErrRolloverFailed is returned: the task stays Done
	// with its date unchanged rather than drifting off schedule silently.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	tx        store.Transactioner
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	tx store.Transactioner,
	logger *slog.Logger,
) (*TaskServiceImpl, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskServiceImpl{
		taskStore: taskStore,
		tx:        tx,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// Add validates and persists a new task.
func (s *TaskServiceImpl) Add(
	ctx context.Context,
	owner, title string,
	status domain.Status,
	dueDate string,
	favorite bool,
	category string,
	priority domain.Priority,
	recurrence domain.Recurrence,
) (*domain.Task, error) {
	task, err := domain.NewTask(owner, title, status, dueDate, favorite, category, priority, recurrence)
	if err != nil {
		s.logger.Debug("task rejected by validation",
			"error", err,
			"owner", owner)
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"owner", owner)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"owner", task.Owner)

	return task, nil
}

// Get retrieves a task by ID.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to retrieve task",
				"error", err,
				"task_id", id)
		}
		return nil, err
	}
	return task, nil
}

// List retrieves the owner's tasks in insertion order.
func (s *TaskServiceImpl) List(ctx context.Context, owner string) ([]domain.Task, error) {
	tasks, err := s.taskStore.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"owner", owner)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update validates and replaces a task's mutable fields.
func (s *TaskServiceImpl) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		s.logger.Debug("task update rejected by validation",
			"error", err,
			"task_id", task.ID)
		return err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", task.ID)
		}
		return err
	}

	s.logger.Info("task updated",
		"task_id", task.ID,
		"owner", task.Owner)

	return nil
}

// Delete removes a task by ID.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to delete task",
				"error", err,
				"task_id", id)
		}
		return err
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// Search returns the owner's matching tasks.
func (s *TaskServiceImpl) Search(ctx context.Context, owner, query string) ([]domain.Task, error) {
	tasks, err := s.taskStore.Search(ctx, owner, query)
	if err != nil {
		s.logger.Error("failed to search tasks",
			"error", err,
			"owner", owner)
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// DueOn returns tasks due on the given date across all owners.
func (s *TaskServiceImpl) DueOn(ctx context.Context, dueDate string) ([]domain.Task, error) {
	if _, err := domain.ParseDueDate(dueDate); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.ListDueOn(ctx, dueDate)
	if err != nil {
		s.logger.Error("failed to list due tasks",
			"error", err,
			"due_date", dueDate)
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return tasks, nil
}

// SetStatus writes the new status and performs the recurrence rollover.
//
// The status write, the re-read, and the rollover write all run inside one
// transaction, so concurrent readers observe either the task before the
// call or its final state -- never Done with an already-advanced date, nor
// ToDo with the stale one. When the stored due date fails to parse, the
// transaction still commits the Done write and the failure is surfaced as
// ErrRolloverFailed.
func (s *TaskServiceImpl) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
) (*domain.Task, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}

	var result *domain.Task
	var rolloverErr error

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		if err := txStore.UpdateStatus(ctx, id, status); err != nil {
			return err
		}

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if status != domain.StatusDone || !task.IsRecurring() {
			result = task
			return nil
		}

		nextDue, err := recur.Advance(task.Recurrence, task.DueDate)
		if err != nil {
			// Fail closed: commit the Done write, leave the date alone,
			// and report the failure after the transaction.
			rolloverErr = fmt.Errorf("%w: task %s: %v", ErrRolloverFailed, id, err)
			result = task
			return nil
		}

		if err := txStore.RollOver(ctx, id, nextDue); err != nil {
			return err
		}

		task.Status = domain.StatusToDo
		task.DueDate = nextDue
		result = task

		s.logger.Info("recurring task rolled over",
			"task_id", id,
			"recurrence", task.Recurrence,
			"next_due", nextDue)

		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to set task status",
				"error", err,
				"task_id", id,
				"status", status)
		}
		return nil, err
	}

	if rolloverErr != nil {
		s.logger.Error("recurrence rollover failed, task left Done",
			"error", rolloverErr,
			"task_id", id)
		return result, rolloverErr
	}

	return result, nil
}
