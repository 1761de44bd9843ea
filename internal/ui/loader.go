package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/view"
)

// Loader is a view controller a screen mounts.
type Loader interface {
	Load(ctx context.Context) error
	Status() view.Status
	Unmount()
}

// LoadedMsg reports a finished load. Mount identifies the screen mount
// that started it; screens drop messages from earlier mounts.
type LoadedMsg struct {
	Route session.Route
	Mount int
	Err   error
}

// Load runs l.Load off the UI goroutine.
func Load(route session.Route, mount int, l Loader) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Route: route, Mount: mount, Err: l.Load(context.Background())}
	}
}

// Stale reports whether msg belongs to another screen or an earlier mount.
func (msg LoadedMsg) Stale(route session.Route, mount int) bool {
	return msg.Route != route || msg.Mount != mount || errors.Is(msg.Err, view.ErrStale)
}

// AfterLoad returns the follow-up command for a current LoadedMsg: a
// redirect to login when the view was redirected, otherwise nil.
func AfterLoad(msg LoadedMsg, l Loader) tea.Cmd {
	if l.Status() != view.StatusRedirected {
		return nil
	}
	if apperrors.IsErrorType(msg.Err, apperrors.ErrorTypeSessionExpired) {
		return tea.Batch(Navigate(session.RouteLogin), Status(apperrors.GetUserMessage(msg.Err)))
	}
	return Navigate(session.RouteLogin)
}
