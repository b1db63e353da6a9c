package postgres

import (
	"context"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/store"
)

// LoginStore implements the store.LoginStore interface using a PostgreSQL
// database as the storage backend. The table is append-only.
type LoginStore struct {
	db store.DBTX
}

// NewLoginStore creates a new PostgreSQL implementation of the LoginStore
// interface.
func NewLoginStore(db store.DBTX) *LoginStore {
	return &LoginStore{db: db}
}

// Ensure LoginStore implements store.LoginStore interface
var _ store.LoginStore = (*LoginStore)(nil)

// Record implements store.LoginStore.Record
func (s *LoginStore) Record(ctx context.Context, event domain.LoginEvent) error {
	const query = `INSERT INTO login_events (username, logged_in_at) VALUES ($1, $2)`

	_, err := s.db.ExecContext(ctx, query, event.Username, event.At)
	if err != nil {
		return MapError(err)
	}

	return nil
}
