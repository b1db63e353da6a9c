package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every query except ListDueOn is scoped to a single owner; ListDueOn is
// the one deliberately global read, feeding the daily reminder sweep.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves all tasks owned by the given username in
	// insertion order.
	ListByOwner(ctx context.Context, owner string) ([]domain.Task, error)

	// Update replaces the mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus writes a new status for the task, leaving all other
	// fields untouched. Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error

	// RollOver advances a recurring task to its next occurrence: due date is
	// set to dueDate and status is reset to ToDo in a single write.
	// Returns ErrTaskNotFound if the task does not exist.
	RollOver(ctx context.Context, id uuid.UUID, dueDate string) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns the owner's tasks whose title, due date, or status
	// contains the query as a case-insensitive substring. Results never
	// cross the owner boundary.
	Search(ctx context.Context, owner, query string) ([]domain.Task, error)

	// ListDueOn retrieves tasks due on the given YYYY-MM-DD date across
	// all owners. This is the reminder sweep's global read.
	ListDueOn(ctx context.Context, dueDate string) ([]domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
