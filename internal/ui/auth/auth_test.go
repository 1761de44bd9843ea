package auth

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/ui"
)

func TestLoginResult(t *testing.T) {
	m := NewLogin(nil, keys.DefaultKeyMap())
	m.Mount()

	m, _ = m.Update(resultMsg{form: m.formID, err: apperrors.NewAuthenticationError("Invalid email or password", nil)})
	assert.Equal(t, "Invalid email or password", m.Error())
	assert.Contains(t, m.View(), "Invalid email or password")

	m, cmd := m.Update(resultMsg{form: m.formID})
	assert.Empty(t, m.Error())
	require.NotNil(t, cmd)
	assert.Equal(t, ui.NavigateMsg{Route: session.RouteDashboard}, cmd())
}

func TestLoginIgnoresStaleResult(t *testing.T) {
	m := NewLogin(nil, keys.DefaultKeyMap())
	m.Mount()
	stale := m.formID
	m.Unmount()

	m, cmd := m.Update(resultMsg{form: stale, err: apperrors.NewAuthenticationError("nope", nil)})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Error())
}

func TestSwitchForms(t *testing.T) {
	k := keys.DefaultKeyMap()

	login := NewLogin(nil, k)
	login.Mount()
	_, cmd := login.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.NavigateMsg{Route: session.RouteRegister}, cmd())

	reg := NewRegister(nil, k)
	reg.Mount()
	_, cmd = reg.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.NavigateMsg{Route: session.RouteLogin}, cmd())
}

func TestRegisterResult(t *testing.T) {
	m := NewRegister(nil, keys.DefaultKeyMap())
	m.Mount()

	m, _ = m.Update(resultMsg{form: m.formID, err: apperrors.NewValidationError("confirm", "Passwords do not match")})
	assert.Equal(t, "Passwords do not match", m.Error())

	m, cmd := m.Update(registeredMsg{form: m.formID, next: session.RouteDashboard})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.NavigateMsg{Route: session.RouteDashboard}, cmd())
	assert.Empty(t, m.Error())
}
