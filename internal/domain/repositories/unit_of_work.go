package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope. Nested
	// calls join the transaction already carried by the context, so a
	// composed operation commits or rolls back as one unit.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
