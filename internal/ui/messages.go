// Package ui holds the pieces shared by every screen: layout, cross-screen
// messages and the browser opener.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studentpro/internal/session"
)

// NavigateMsg asks the root model to show Route. The route guard runs
// before the screen is mounted.
type NavigateMsg struct {
	Route session.Route
}

// LogoutMsg asks the root model to clear the identity and show login.
type LogoutMsg struct{}

// StatusMsg replaces the transient status bar text.
type StatusMsg string

// Navigate returns a command emitting NavigateMsg for r.
func Navigate(r session.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// Status returns a command emitting StatusMsg.
func Status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(text) }
}
