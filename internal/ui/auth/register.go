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

// registeredMsg carries a successful registration and the route to show.
type registeredMsg struct {
	form int
	next session.Route
}

type registerBindings struct {
	name     string
	email    string
	password string
	confirm  string
}

// Register is the account creation screen.
type Register struct {
	manager *session.Manager
	keys    *keys.KeyMap
	form    *huh.Form
	fb      *registerBindings
	formID  int
	busy    bool
	err     string
	width   int
}

// NewRegister creates the register screen.
func NewRegister(m *session.Manager, k *keys.KeyMap) Register {
	return Register{manager: m, keys: k, fb: &registerBindings{}, width: 80}
}

// Mount resets the password fields and returns the form init command.
func (m *Register) Mount() tea.Cmd {
	m.fb.password = ""
	m.fb.confirm = ""
	m.busy = false
	m.formID = nextFormID()
	m.form = m.buildForm()
	return m.form.Init()
}

// Unmount drops any pending submit.
func (m *Register) Unmount() {
	m.formID = nextFormID()
	m.busy = false
}

// CapturesInput reports whether keys go to the form.
func (m Register) CapturesInput() bool {
	return true
}

// Error returns the inline error text.
func (m Register) Error() string {
	return m.err
}

func (m *Register) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm),
		),
	).WithWidth(formWidth(m.width)).WithShowHelp(false)
}

// Update handles messages for the register screen.
func (m Register) Update(msg tea.Msg) (Register, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.form != m.formID {
			return m, nil
		}
		m.busy = false
		m.err = apperrors.GetUserMessage(msg.err)
		return m, m.Mount()

	case registeredMsg:
		if msg.form != m.formID {
			return m, nil
		}
		m.busy = false
		m.err = ""
		if msg.next == session.RouteLogin {
			return m, tea.Batch(ui.Navigate(msg.next), ui.Status("Account created. Please sign in."))
		}
		return m, ui.Navigate(msg.next)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.SwitchForm) {
			return m, ui.Navigate(session.RouteLogin)
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

func (m Register) submit() tea.Cmd {
	manager := m.manager
	in := session.RegisterInput{
		Name:     m.fb.name,
		Email:    m.fb.email,
		Password: m.fb.password,
		Confirm:  m.fb.confirm,
	}
	id := m.formID
	return func() tea.Msg {
		next, err := manager.Register(context.Background(), in)
		if err != nil {
			return resultMsg{form: id, err: err}
		}
		return registeredMsg{form: id, next: next}
	}
}

// View renders the register screen.
func (m Register) View() string {
	form := ""
	if m.form != nil && !m.busy {
		form = m.form.View()
	}
	return render(
		"Create your account",
		"Start organizing your studies with StudentPro",
		form, m.err,
		"ctrl+r back to sign in | ctrl+c quit",
		m.busy,
	)
}

// SetSize updates the form dimensions.
func (m *Register) SetSize(width, height int) {
	m.width = width
	if m.form != nil {
		m.form = m.form.WithWidth(formWidth(width))
	}
}
