package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes fn inside one transaction; any returned error rolls everything back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// WithLock marks ctx so the next row read inside Do takes a FOR UPDATE lock.
	WithLock(ctx context.Context) context.Context
}
