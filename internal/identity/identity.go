// Package identity implements session.IdentityStore on the configured
// durable backend.
package identity

import (
	"context"
	"fmt"
	"io"

	"github.com/nhle/studentpro/internal/credential"
	"github.com/nhle/studentpro/internal/logging"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/store"
)

// Fixed storage keys.
const (
	KeyUserID = "userId"
	KeyToken  = "token"
)

// Backend is an identity store that owns resources.
type Backend interface {
	session.IdentityStore
	io.Closer
}

// Open builds the backend selected by cfg.
func Open(cfg model.IdentityConfig) (Backend, error) {
	switch cfg.Backend {
	case model.IdentityBackendLocal, "":
		s, err := store.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening local identity storage: %w", err)
		}
		if logging.DebugEnabled() {
			describeLocal(context.Background(), s, cfg.Path)
		}
		return NewLocalStore(s), nil

	case model.IdentityBackendKeyring:
		ring, err := credential.Open(cfg.KeyringDir)
		if err != nil {
			return nil, err
		}
		return NewKeyringStore(ring), nil

	case model.IdentityBackendMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown identity backend %q", cfg.Backend)
	}
}

// describeLocal logs the schema version and the stored keys of s. Values
// are never logged.
func describeLocal(ctx context.Context, s *store.SQLiteStore, path string) {
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		logging.Debugf("identity: %v", err)
		return
	}
	items, err := s.Items(ctx)
	if err != nil {
		logging.Debugf("identity: %v", err)
		return
	}
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	logging.Debugf("identity: %s at schema v%d, keys %v", path, version, keys)
}
