package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studentpro/internal/theme"
)

// Names lists the commands offered as completions.
var Names = []string{
	"dashboard", "tasks", "practice", "storage",
	"login", "register", "reload", "logout", "quit",
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Model is the command palette view.
type Model struct {
	input textinput.Model
	width int
}

// New creates a new command palette model.
func New(width int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Width = width - 6

	return Model{
		input: ti,
		width: width,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			cmd := strings.ToLower(strings.TrimSpace(m.input.Value()))
			m.input.Reset()
			if cmd == "" {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			return m, func() tea.Msg { return CommandMsg(cmd) }
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := theme.TitleStyle.Render("Command Palette")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View())

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width int) {
	m.width = width
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
