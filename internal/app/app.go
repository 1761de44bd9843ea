package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studentpro/internal/api"
	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/ui"
	"github.com/nhle/studentpro/internal/ui/auth"
	"github.com/nhle/studentpro/internal/ui/command"
	"github.com/nhle/studentpro/internal/ui/dashboard"
	helpview "github.com/nhle/studentpro/internal/ui/help"
	"github.com/nhle/studentpro/internal/ui/practice"
	"github.com/nhle/studentpro/internal/ui/storage"
	"github.com/nhle/studentpro/internal/ui/tasks"
	"github.com/nhle/studentpro/internal/view"
)

// Overlay is drawn on top of the current screen.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayCommand
)

// loggedOutMsg reports that the identity was cleared.
type loggedOutMsg struct {
	err error
}

// Model is the root Bubble Tea model that routes between screens and runs
// the route guard before each navigation.
type Model struct {
	route   session.Route
	start   session.Route
	overlay Overlay
	layout  ui.Layout
	keys    *keys.KeyMap
	manager *session.Manager
	guard   *session.Guard
	baseURL string
	status  string
	ready   bool

	login     auth.Login
	register  auth.Register
	dashboard dashboard.Model
	tasks     tasks.Model
	practice  practice.Model
	storage   storage.Model

	helpView    helpview.Model
	commandView command.Model

	dashboardView *view.Dashboard
	tasksView     *view.Tasks
	practiceView  *view.Practice
	storageView   *view.Storage
}

// New creates the root model. start is the first route requested; the
// guard may replace it.
func New(manager *session.Manager, client *api.Client, start session.Route) Model {
	k := keys.DefaultKeyMap()
	guard := session.NewGuard(manager)
	deps := view.Deps{Manager: manager, Guard: guard, API: client}

	dv := view.NewDashboard(deps)
	tv := view.NewTasks(deps, client)
	pv := view.NewPractice(deps)
	sv := view.NewStorage(deps)

	if start == "" {
		start = session.RouteDashboard
	}

	return Model{
		start:         start,
		keys:          k,
		manager:       manager,
		guard:         guard,
		baseURL:       client.BaseURL(),
		login:         auth.NewLogin(manager, k),
		register:      auth.NewRegister(manager, k),
		dashboard:     dashboard.New(dv, k),
		tasks:         tasks.New(tv, k),
		practice:      practice.New(pv, k),
		storage:       storage.New(sv, k),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80),
		dashboardView: dv,
		tasksView:     tv,
		practiceView:  pv,
		storageView:   sv,
	}
}

// Route returns the screen currently shown.
func (m Model) Route() session.Route {
	return m.route
}

// Overlay returns the overlay currently shown.
func (m Model) Overlay() Overlay {
	return m.overlay
}

// StatusText returns the transient status bar message.
func (m Model) StatusText() string {
	return m.status
}

// Init navigates to the start route.
func (m Model) Init() tea.Cmd {
	return ui.Navigate(m.start)
}

// Update handles messages and dispatches to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.login.SetSize(w, h)
		m.register.SetSize(w, h)
		m.dashboard.SetSize(w, h)
		m.tasks.SetSize(w, h)
		m.practice.SetSize(w, h)
		m.storage.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w)
		// Forward to the active screen so huh forms can calculate their layout.
		return m.updateActiveScreen(msg)

	case ui.NavigateMsg:
		return m, m.navigate(msg.Route)

	case ui.LogoutMsg:
		return m, m.logout()

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "could not sign out: " + msg.err.Error()
			return m, nil
		}
		m.status = "Signed out"
		return m, m.navigate(session.RouteLogin)

	case ui.StatusMsg:
		m.status = string(msg)
		return m, nil

	case command.CommandMsg:
		m.overlay = OverlayNone
		return m, m.executeCommand(string(msg))

	case command.CancelMsg:
		m.overlay = OverlayNone
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""

		switch m.overlay {
		case OverlayHelp:
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
				m.overlay = OverlayNone
			}
			return m, nil
		case OverlayCommand:
			var cmd tea.Cmd
			m.commandView, cmd = m.commandView.Update(msg)
			return m, cmd
		}

		if !m.capturesInput() {
			if cmd, handled := m.handleGlobalKey(msg); handled {
				return m, cmd
			}
		}
	}

	return m.updateActiveScreen(msg)
}

// handleGlobalKey processes keys that work on every screen without a
// focused text field.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.helpView.SetRoute(m.route)
		m.overlay = OverlayHelp
		return nil, true
	case key.Matches(msg, m.keys.Command):
		m.overlay = OverlayCommand
		return m.commandView.Focus(), true
	}

	if !m.route.Protected() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Logout):
		return m.logout(), true
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(session.RouteDashboard), true
	case key.Matches(msg, m.keys.Tasks):
		return m.navigate(session.RouteTasks), true
	case key.Matches(msg, m.keys.Practice):
		return m.navigate(session.RoutePractice), true
	case key.Matches(msg, m.keys.Storage):
		return m.navigate(session.RouteStorage), true
	case key.Matches(msg, m.keys.Back) && m.route != session.RouteDashboard:
		return m.navigate(session.RouteDashboard), true
	}
	return nil, false
}

// navigate applies the route guard, unmounts the current screen, and
// mounts the resolved one.
func (m *Model) navigate(r session.Route) tea.Cmd {
	target := m.guard.Resolve(context.Background(), r)

	m.unmount()
	m.route = target
	m.overlay = OverlayNone

	switch target {
	case session.RouteLogin:
		return m.login.Mount()
	case session.RouteRegister:
		return m.register.Mount()
	case session.RouteDashboard:
		return m.dashboard.Mount()
	case session.RouteTasks:
		return m.tasks.Mount()
	case session.RoutePractice:
		return m.practice.Mount()
	case session.RouteStorage:
		return m.storage.Mount()
	}
	return nil
}

func (m *Model) unmount() {
	switch m.route {
	case session.RouteLogin:
		m.login.Unmount()
	case session.RouteRegister:
		m.register.Unmount()
	case session.RouteDashboard:
		m.dashboard.Unmount()
	case session.RouteTasks:
		m.tasks.Unmount()
	case session.RoutePractice:
		m.practice.Unmount()
	case session.RouteStorage:
		m.storage.Unmount()
	}
}

func (m *Model) logout() tea.Cmd {
	m.unmount()
	manager := m.manager
	return func() tea.Msg {
		return loggedOutMsg{err: manager.Logout(context.Background())}
	}
}

func (m Model) capturesInput() bool {
	switch m.route {
	case session.RouteLogin:
		return m.login.CapturesInput()
	case session.RouteRegister:
		return m.register.CapturesInput()
	case session.RouteTasks:
		return m.tasks.CapturesInput()
	case session.RouteStorage:
		return m.storage.CapturesInput()
	default:
		return false
	}
}

// updateActiveScreen dispatches the message to the current screen.
func (m Model) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.route {
	case session.RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case session.RouteRegister:
		m.register, cmd = m.register.Update(msg)
	case session.RouteDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case session.RouteTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case session.RoutePractice:
		m.practice, cmd = m.practice.Update(msg)
	case session.RouteStorage:
		m.storage, cmd = m.storage.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.title(), m.headerRight())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

func (m Model) renderContent() string {
	switch m.overlay {
	case OverlayHelp:
		return m.helpView.View()
	case OverlayCommand:
		return m.commandView.View()
	}

	switch m.route {
	case session.RouteLogin:
		return m.login.View()
	case session.RouteRegister:
		return m.register.View()
	case session.RouteDashboard:
		return m.dashboard.View()
	case session.RouteTasks:
		return m.tasks.View()
	case session.RoutePractice:
		return m.practice.View()
	case session.RouteStorage:
		return m.storage.View()
	default:
		return ""
	}
}

func (m Model) title() string {
	switch m.route {
	case session.RouteLogin:
		return "StudentPro · Sign in"
	case session.RouteRegister:
		return "StudentPro · Register"
	case session.RouteDashboard:
		return "StudentPro · Dashboard"
	case session.RouteTasks:
		return "StudentPro · Tasks"
	case session.RoutePractice:
		return "StudentPro · Practice"
	case session.RouteStorage:
		return "StudentPro · Storage"
	default:
		return "StudentPro"
	}
}

// headerRight shows who is signed in, or the backend when nobody is.
func (m Model) headerRight() string {
	var name string
	switch m.route {
	case session.RouteDashboard:
		name = m.dashboardView.DisplayName()
	case session.RouteTasks:
		name = m.tasksView.DisplayName()
	case session.RoutePractice:
		name = m.practiceView.DisplayName()
	case session.RouteStorage:
		name = m.storageView.DisplayName()
	default:
		return m.baseURL
	}
	return name
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.status != "" {
		return m.status
	}

	switch m.overlay {
	case OverlayHelp:
		return "? close help | esc back"
	case OverlayCommand:
		return "enter execute | tab complete | esc cancel"
	}

	switch m.route {
	case session.RouteLogin, session.RouteRegister:
		return "tab next field | enter submit | ctrl+r switch | ctrl+c quit"
	case session.RouteTasks:
		if m.tasks.CapturesInput() {
			return "enter confirm | tab next field | esc cancel"
		}
		return "n new | x toggle | d delete | / search | r reload | L logout | ? help"
	case session.RoutePractice:
		return "enter open | r reload | esc dashboard | L logout | ? help"
	case session.RouteStorage:
		if m.storage.CapturesInput() {
			return "enter done | esc clear"
		}
		return "enter download | / search | r reload | L logout | ? help"
	default:
		return "enter open | 1-4 switch | r reload | L logout | : command | ? help | q quit"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "quit", "q":
		return tea.Quit
	case "logout":
		if m.route.Protected() {
			return m.logout()
		}
		return nil
	case "reload", "refresh":
		return m.navigate(m.route)
	}

	if r := session.Route(cmd); r.Valid() {
		return m.navigate(r)
	}
	m.status = "unknown command: " + cmd
	return nil
}
