package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/ui"
)

// loginBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type loginBindings struct {
	email    string
	password string
}

// Login is the sign-in screen.
type Login struct {
	manager *session.Manager
	keys    *keys.KeyMap
	form    *huh.Form
	fb      *loginBindings
	formID  int
	busy    bool
	err     string
	width   int
}

// NewLogin creates the login screen.
func NewLogin(m *session.Manager, k *keys.KeyMap) Login {
	return Login{manager: m, keys: k, fb: &loginBindings{}, width: 80}
}

// Mount resets the form and returns its init command.
func (m *Login) Mount() tea.Cmd {
	m.fb.password = ""
	m.busy = false
	m.formID = nextFormID()
	m.form = m.buildForm()
	return m.form.Init()
}

// Unmount drops any pending submit.
func (m *Login) Unmount() {
	m.formID = nextFormID()
	m.busy = false
}

// CapturesInput reports whether keys go to the form.
func (m Login) CapturesInput() bool {
	return true
}

// Error returns the inline error text.
func (m Login) Error() string {
	return m.err
}

func (m *Login) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(formWidth(m.width)).WithShowHelp(false)
}

// Update handles messages for the login screen.
func (m Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.form != m.formID {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.err = apperrors.GetUserMessage(msg.err)
			return m, m.Mount()
		}
		m.err = ""
		return m, ui.Navigate(session.RouteDashboard)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.SwitchForm) {
			return m, ui.Navigate(session.RouteRegister)
		}
	}

	if m.form == nil || m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.busy = true
		return m, m.submit()
	case huh.StateAborted:
		return m, m.Mount()
	}
	return m, cmd
}

func (m Login) submit() tea.Cmd {
	manager := m.manager
	email, password := m.fb.email, m.fb.password
	id := m.formID
	return func() tea.Msg {
		_, err := manager.Login(context.Background(), email, password)
		return resultMsg{form: id, err: err}
	}
}

// View renders the login screen.
func (m Login) View() string {
	form := ""
	if m.form != nil && !m.busy {
		form = m.form.View()
	}
	return render(
		"Welcome back",
		"Sign in to continue to StudentPro",
		form, m.err,
		"ctrl+r create an account | ctrl+c quit",
		m.busy,
	)
}

// SetSize updates the form dimensions.
func (m *Login) SetSize(width, height int) {
	m.width = width
	if m.form != nil {
		m.form = m.form.WithWidth(formWidth(width))
	}
}
