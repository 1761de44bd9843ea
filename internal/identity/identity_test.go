package identity

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/studentpro/internal/credential"
	"github.com/nhle/studentpro/internal/logging"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/tests/testutil"
)

func backends(t *testing.T) map[string]session.IdentityStore {
	return map[string]session.IdentityStore{
		"local":   NewLocalStore(testutil.NewTestStore(t)),
		"keyring": NewKeyringStore(credential.New(keyring.NewArrayKeyring(nil))),
		"memory":  NewMemoryStore(),
	}
}

func TestIdentityStores(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.False(t, got.IsActive())

			require.NoError(t, s.Set(ctx, "u-1", "tok"))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, session.Session{UserID: "u-1", Token: "tok"}, got)

			// Setting without a token drops the cached one.
			require.NoError(t, s.Set(ctx, "u-2", ""))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, session.Session{UserID: "u-2"}, got)

			require.NoError(t, s.Set(ctx, "u-3", "tok3"))
			require.NoError(t, s.Clear(ctx))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, session.Session{}, got)

			// Clearing twice is fine.
			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(model.IdentityConfig{Backend: model.IdentityBackendLocal, Path: filepath.Join(dir, "id.db")})
	require.NoError(t, err)
	require.NoError(t, b.Set(context.Background(), "persist", ""))
	require.NoError(t, b.Close())

	b, err = Open(model.IdentityConfig{Backend: model.IdentityBackendLocal, Path: filepath.Join(dir, "id.db")})
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persist", got.UserID)

	m, err := Open(model.IdentityConfig{Backend: model.IdentityBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, m)

	_, err = Open(model.IdentityConfig{Backend: "cookie"})
	assert.Error(t, err)
}

func TestOpenDebugDescribesLocalStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.db")
	b, err := Open(model.IdentityConfig{Backend: model.IdentityBackendLocal, Path: path})
	require.NoError(t, err)
	require.NoError(t, b.Set(context.Background(), "u-4242", "tok-9"))
	require.NoError(t, b.Close())

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetDebug(true)
	t.Cleanup(func() {
		logging.SetDebug(false)
		logging.SetOutput(nil)
	})

	b, err = Open(model.IdentityConfig{Backend: model.IdentityBackendLocal, Path: path})
	require.NoError(t, err)
	defer b.Close()

	out := buf.String()
	assert.Contains(t, out, "schema v1")
	assert.Contains(t, out, KeyUserID)
	assert.NotContains(t, out, "u-4242")
	assert.NotContains(t, out, "tok-9")
}
