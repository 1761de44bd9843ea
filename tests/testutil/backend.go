package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/studentpro/internal/api"
	"github.com/nhle/studentpro/internal/mockapi"
)

// NewTestBackend starts a mock API server and returns it with a client
// pointed at it. The server is shut down when the test completes.
func NewTestBackend(t *testing.T, opts ...mockapi.Option) (*mockapi.Server, *api.Client) {
	t.Helper()

	opts = append([]mockapi.Option{mockapi.WithBcryptCost(bcrypt.MinCost)}, opts...)
	srv := mockapi.New(opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return srv, api.NewClient(ts.URL, api.WithHTTPClient(ts.Client()))
}

// RegisterUser creates an account on the backend and returns its user id.
func RegisterUser(t *testing.T, client *api.Client, name, email, password string) string {
	t.Helper()

	res, err := client.Register(context.Background(), name, email, password)
	if err != nil {
		t.Fatalf("registering %s: %v", email, err)
	}
	if res.UserID == "" {
		t.Fatalf("registering %s: no user id returned", email)
	}
	return res.UserID
}
