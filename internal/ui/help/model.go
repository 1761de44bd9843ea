// Package help renders the keyboard shortcut overlay for the current screen.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/theme"
)

// bindings adapts a fixed set of groups to help.KeyMap.
type bindings [][]key.Binding

func (b bindings) ShortHelp() []key.Binding {
	if len(b) == 0 {
		return nil
	}
	return b[0]
}

func (b bindings) FullHelp() [][]key.Binding {
	return b
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	route  session.Route
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   k,
		help:   h,
		width:  width,
		height: height,
	}
}

// SetRoute selects the screen whose shortcuts are listed.
func (m *Model) SetRoute(r session.Route) {
	m.route = r
}

// screenKeys returns the bindings that act on the current screen.
func (m Model) screenKeys() []key.Binding {
	k := m.keys
	switch m.route {
	case session.RouteLogin, session.RouteRegister:
		return []key.Binding{k.SwitchForm}
	case session.RouteDashboard:
		return []key.Binding{k.Up, k.Down, k.Select, k.Refresh}
	case session.RouteTasks:
		return []key.Binding{k.Add, k.Toggle, k.Delete, k.Search, k.Refresh}
	case session.RoutePractice:
		return []key.Binding{k.Up, k.Down, k.Select, k.Refresh}
	case session.RouteStorage:
		return []key.Binding{k.Up, k.Down, k.Search, k.Select, k.Refresh}
	}
	return nil
}

func (m Model) groups() bindings {
	k := m.keys
	groups := bindings{m.screenKeys()}
	if m.route.Protected() {
		groups = append(groups, []key.Binding{k.Dashboard, k.Tasks, k.Practice, k.Storage, k.Back, k.Logout})
	}
	return append(groups, []key.Binding{k.Command, k.Help, k.Quit})
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.TitleStyle.Render("Keyboard Shortcuts")
	content := []string{title, m.help.View(m.groups())}

	if m.route.Protected() {
		content = append(content, "", theme.HelpStyle.Render(
			"Commands: dashboard, tasks, practice, storage, reload, logout, quit"))
	}

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
