package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/studentpro/internal/identity"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
)

func TestScopeGenerations(t *testing.T) {
	var s Scope

	ctx1, gen1 := s.Begin(context.Background())
	assert.True(t, s.Current(gen1))

	ctx2, gen2 := s.Begin(context.Background())
	assert.False(t, s.Current(gen1))
	assert.True(t, s.Current(gen2))
	assert.Error(t, ctx1.Err(), "superseded load is cancelled")
	assert.NoError(t, ctx2.Err())

	s.Unmount()
	assert.False(t, s.Current(gen2))
	assert.Error(t, ctx2.Err())
}

// blockingAPI holds profile responses until released.
type blockingAPI struct {
	release chan struct{}
	name    string
}

func (b *blockingAPI) GetUserProfile(ctx context.Context, _ string) (*model.UserProfile, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return &model.UserProfile{Name: b.name}, nil
}

func (b *blockingAPI) ListTasks(context.Context, string) ([]model.Task, error) { return nil, nil }
func (b *blockingAPI) ListPlatforms(context.Context, string) ([]model.PracticeLink, error) {
	return nil, nil
}
func (b *blockingAPI) ListFiles(context.Context, string) ([]model.StorageFile, error) { return nil, nil }

func TestUnmountDiscardsLateResult(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "u1", ""))
	manager := session.NewManager(store, nil)

	fake := &blockingAPI{release: make(chan struct{}), name: "Late"}
	d := NewDashboard(Deps{Manager: manager, Guard: session.NewGuard(manager), API: fake})

	done := make(chan error, 1)
	go func() { done <- d.Load(ctx) }()

	// Wait until the load has started before unmounting.
	require.Eventually(t, func() bool { return d.Status() == StatusLoading }, timeout, tick)
	d.Unmount()
	close(fake.release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Nil(t, d.Profile())
	assert.True(t, manager.IsAuthenticated(ctx))
}

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)
