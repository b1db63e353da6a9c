package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/store"
)

// taskColumns is the canonical column list, matching the export field order
// (id, owner, title, status, due_date, favorite, category, priority,
// recurrence) plus timestamps.
const taskColumns = `id, owner, title, status, due_date, favorite, category, priority, recurrence, created_at, updated_at`

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection that should be initialized
// and managed by the caller.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Owner,
		task.Title,
		task.Status,
		task.DueDate,
		task.Favorite,
		task.Category,
		task.Priority,
		task.Recurrence,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
		}
		return nil, MapError(err)
	}

	return task, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *TaskStore) ListByOwner(ctx context.Context, owner string) ([]domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE owner = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE tasks
		SET title = $2, status = $3, due_date = $4, favorite = $5,
		    category = $6, priority = $7, recurrence = $8, updated_at = $9
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Status,
		task.DueDate,
		task.Favorite,
		task.Category,
		task.Priority,
		task.Recurrence,
		time.Now().UTC(),
	)
	if err != nil {
		return MapError(err)
	}

	return requireRowAffected(result, store.ErrTaskNotFound)
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *TaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	const query = `UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}

	return requireRowAffected(result, store.ErrTaskNotFound)
}

// RollOver implements store.TaskStore.RollOver
func (s *TaskStore) RollOver(ctx context.Context, id uuid.UUID, dueDate string) error {
	const query = `UPDATE tasks SET due_date = $2, status = $3, updated_at = $4 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, dueDate, domain.StatusToDo, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}

	return requireRowAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	return requireRowAffected(result, store.ErrTaskNotFound)
}

// Search implements store.TaskStore.Search
func (s *TaskStore) Search(ctx context.Context, owner, query string) ([]domain.Task, error) {
	// ILIKE gives the case-insensitive substring match; the owner predicate
	// keeps results inside the caller's boundary.
	const stmt = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner = $1
		  AND (title ILIKE $2 OR due_date ILIKE $2 OR status ILIKE $2)
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, stmt, owner, "%"+query+"%")
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListDueOn implements store.TaskStore.ListDueOn
func (s *TaskStore) ListDueOn(ctx context.Context, dueDate string) ([]domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE due_date = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, dueDate)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Owner,
		&task.Title,
		&task.Status,
		&task.DueDate,
		&task.Favorite,
		&task.Category,
		&task.Priority,
		&task.Recurrence,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
