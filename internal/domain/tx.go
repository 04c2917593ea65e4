package domain

import (
	"context"
	"errors"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a versioned update lost a race with another writer
	ErrConflict = errors.New("resource was modified concurrently")
)

// Transactor runs fn inside a single atomic persistence transaction.
// Repositories called with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
