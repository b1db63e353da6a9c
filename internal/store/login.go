package store

import (
	"context"

	"github.com/phrazzld/remind-api/internal/domain"
)

// LoginStore defines the interface for the append-only login audit trail.
// Events are only ever inserted; there is no read path in the core.
type LoginStore interface {
	// Record appends a login event. Storage faults here are non-critical:
	// callers log and continue rather than failing the login flow.
	Record(ctx context.Context, event domain.LoginEvent) error
}
