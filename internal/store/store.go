package store

import (
	"context"
)

// Item is a single durable key-value entry.
type Item struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

// Store is durable, process-wide key-value storage: the terminal
// counterpart of browser localStorage. It survives restarts and is shared
// by every view of the process.
type Store interface {
	// GetItem returns the value for key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem inserts or replaces the value for key.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, keys ...string) error

	// Items lists all entries ordered by key.
	Items(ctx context.Context) ([]Item, error)

	Close() error
}
