package session

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nhle/studentpro/internal/api"
	apperrors "github.com/nhle/studentpro/internal/errors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Authenticator is the part of the API client the manager needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (api.AuthResult, error)
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Validate runs the checks done before any request is sent.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name", "Name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return apperrors.NewValidationError("email", "Email is required")
	}
	if in.Password != in.Confirm {
		return apperrors.NewValidationError("confirm", "Passwords do not match")
	}
	if len(in.Password) < MinPasswordLength {
		return apperrors.NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}

// Manager owns the signed-in identity.
type Manager struct {
	store IdentityStore
	auth  Authenticator
}

// NewManager creates a Manager over store, authenticating with auth.
func NewManager(store IdentityStore, auth Authenticator) *Manager {
	return &Manager{store: store, auth: auth}
}

// Current returns the stored session. A storage failure is logged and
// treated as signed out.
func (m *Manager) Current(ctx context.Context) Session {
	s, err := m.store.Get(ctx)
	if err != nil {
		log.Printf("session: reading identity: %v", err)
		return Session{}
	}
	return s
}

// IsAuthenticated reports whether a user id is stored.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.Current(ctx).IsActive()
}

// Login signs in and persists the returned identity.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	res, err := m.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		log.Printf("session: login failed: %v", err)
		return Session{}, apperrors.NewAuthenticationError(
			api.ErrorMessage(err, "Invalid email or password"), err)
	}
	if res.UserID == "" {
		return Session{}, apperrors.NewAuthenticationError("Invalid email or password", nil)
	}

	if err := m.store.Set(ctx, res.UserID, res.Token); err != nil {
		return Session{}, fmt.Errorf("saving identity: %w", err)
	}
	return Session{UserID: res.UserID, Token: res.Token}, nil
}

// Register creates an account and returns the route to show next:
// the dashboard when the backend signed the user in, otherwise login.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (Route, error) {
	if err := in.Validate(); err != nil {
		return RouteRegister, err
	}

	res, err := m.auth.Register(ctx, strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		log.Printf("session: registration failed: %v", err)
		return RouteRegister, apperrors.NewAuthenticationError(
			api.ErrorMessage(err, "Registration failed"), err)
	}

	if res.UserID == "" {
		return RouteLogin, nil
	}
	if err := m.store.Set(ctx, res.UserID, res.Token); err != nil {
		return RouteRegister, fmt.Errorf("saving identity: %w", err)
	}
	return RouteDashboard, nil
}

// Logout removes the identifier and the token.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing identity: %w", err)
	}
	return nil
}

// Invalidate clears the identity after the server refused it and returns
// a session-expired error wrapping cause.
func (m *Manager) Invalidate(ctx context.Context, cause error) error {
	log.Printf("session: invalidating identity (status %d): %v", api.StatusCode(cause), cause)
	if err := m.store.Clear(ctx); err != nil {
		log.Printf("session: clearing identity: %v", err)
	}
	return apperrors.NewSessionExpiredError(cause)
}
