package session_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/studentpro/internal/api"
	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/identity"
	"github.com/nhle/studentpro/internal/logging"
	"github.com/nhle/studentpro/internal/mockapi"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/tests/testutil"
)

func newManager(t *testing.T, opts ...mockapi.Option) (*session.Manager, *identity.MemoryStore, *mockapi.Server) {
	t.Helper()
	srv, client := testutil.NewTestBackend(t, opts...)
	store := identity.NewMemoryStore()
	return session.NewManager(store, client), store, srv
}

func TestLoginPersistsIdentity(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)

	next, err := m.Register(ctx, session.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RouteDashboard, next)
	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsAuthenticated(ctx))

	s, err := m.Login(ctx, " ada@example.com ", "secret1")
	require.NoError(t, err)
	assert.True(t, s.IsActive())
	assert.NotEmpty(t, s.Token)

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, stored)
}

func TestLoginFailureLeavesIdentityAbsent(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAuthentication))
	assert.Equal(t, "Invalid email or password", apperrors.GetUserMessage(err))
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestLoginServerErrorSurfacesDetail(t *testing.T) {
	ctx := context.Background()
	m, _, srv := newManager(t)
	srv.Fail(mockapi.RouteLogin, http.StatusInternalServerError)

	_, err := m.Login(ctx, "ada@example.com", "secret1")
	require.Error(t, err)
	// The failure body carries the status text as detail.
	assert.Equal(t, "Internal Server Error", apperrors.GetUserMessage(err))
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		in   session.RegisterInput
		want string
	}{
		{
			name: "mismatch",
			in:   session.RegisterInput{Name: "Ada", Email: "a@b.c", Password: "secret1", Confirm: "secret2"},
			want: "Passwords do not match",
		},
		{
			name: "short",
			in:   session.RegisterInput{Name: "Ada", Email: "a@b.c", Password: "abc", Confirm: "abc"},
			want: "Password must be at least 6 characters",
		},
		{
			name: "missing name",
			in:   session.RegisterInput{Email: "a@b.c", Password: "secret1", Confirm: "secret1"},
			want: "Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, srv := newManager(t)

			next, err := m.Register(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, session.RouteRegister, next)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
			assert.Equal(t, tt.want, apperrors.GetUserMessage(err))
			assert.Zero(t, srv.Requests())
		})
	}
}

func TestRegisterServerDetailArray(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	_, err := m.Register(ctx, session.RegisterInput{
		Name: "Ada", Email: "not-an-email", Password: "secret1", Confirm: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, "value is not a valid email address", apperrors.GetUserMessage(err))
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestRegisterWithoutUserIDGoesToLogin(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t, mockapi.WithoutAutoLogin())

	next, err := m.Register(ctx, session.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RouteLogin, next)
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestInvalidateClearsIdentity(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)
	require.NoError(t, store.Set(ctx, "u1", "tok"))

	err := m.Invalidate(ctx, assert.AnError)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeSessionExpired))
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestInvalidateLogsStatus(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)
	require.NoError(t, store.Set(ctx, "u1", "tok"))

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(nil) })

	cause := &api.StatusError{Method: "GET", Path: "/user/profile/u1", StatusCode: http.StatusNotFound}
	_ = m.Invalidate(ctx, fmt.Errorf("fetching profile: %w", cause))
	assert.Contains(t, buf.String(), "invalidating identity (status 404)")
}

func TestGuardResolve(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)
	g := session.NewGuard(m)

	for _, r := range []session.Route{session.RouteDashboard, session.RouteTasks, session.RoutePractice, session.RouteStorage} {
		assert.Equal(t, session.RouteLogin, g.Resolve(ctx, r), r)
	}
	assert.Equal(t, session.RouteLogin, g.Resolve(ctx, session.RouteLogin))
	assert.Equal(t, session.RouteRegister, g.Resolve(ctx, session.RouteRegister))
	assert.Equal(t, session.RouteLogin, g.Resolve(ctx, session.Route("nowhere")))

	_, ok := g.Check(ctx)
	assert.False(t, ok)

	// Any non-empty id passes; the guard does not ask the server.
	require.NoError(t, store.Set(ctx, "not-a-real-user", ""))
	for _, r := range []session.Route{session.RouteDashboard, session.RouteTasks, session.RoutePractice, session.RouteStorage} {
		assert.Equal(t, r, g.Resolve(ctx, r))
	}
	assert.Equal(t, session.RouteDashboard, g.Resolve(ctx, session.RouteLogin))
	assert.Equal(t, session.RouteDashboard, g.Resolve(ctx, session.RouteRegister))

	s, ok := g.Check(ctx)
	assert.True(t, ok)
	assert.Equal(t, "not-a-real-user", s.UserID)
}
