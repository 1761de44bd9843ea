// Package tasks is the task list screen.
package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/theme"
	"github.com/nhle/studentpro/internal/ui"
	"github.com/nhle/studentpro/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
)

// mutatedMsg reports a finished create, toggle or delete.
type mutatedMsg struct {
	mount  int
	status string
	err    error
}

// Model is the task list screen.
type Model struct {
	view        *view.Tasks
	keys        *keys.KeyMap
	list        list.Model
	spinner     spinner.Model
	titleInput  textinput.Model
	dueInput    textinput.Model
	searchInput textinput.Model
	mode        mode
	query       string
	err         string
	mount       int
	width       int
	height      int
}

// New creates the task screen over v.
func New(v *view.Tasks, k *keys.KeyMap) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, 80, 20)
	l.Title = "Daily Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	title := textinput.New()
	title.Placeholder = "What do you need to do?"
	title.Prompt = "+ "
	title.CharLimit = model.MaxTaskTitleLength

	due := textinput.New()
	due.Placeholder = "due YYYY-MM-DD HH:MM (optional)"
	due.Prompt = "@ "

	search := textinput.New()
	search.Placeholder = "search tasks..."
	search.Prompt = "/ "

	return Model{
		view:        v,
		keys:        k,
		list:        l,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		titleInput:  title,
		dueInput:    due,
		searchInput: search,
		width:       80,
		height:      24,
	}
}

// Mount starts a fresh load.
func (m *Model) Mount() tea.Cmd {
	m.mount++
	m.mode = modeList
	m.err = ""
	return tea.Batch(m.spinner.Tick, ui.Load(session.RouteTasks, m.mount, m.view))
}

// Unmount cancels the in-flight load and drops pending mutation results.
func (m *Model) Unmount() {
	m.mount++
	m.view.Unmount()
}

// CapturesInput reports whether a text field has focus.
func (m Model) CapturesInput() bool {
	return m.mode != modeList
}

// Error returns the inline error text.
func (m Model) Error() string {
	return m.err
}

// Update handles messages for the task screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.LoadedMsg:
		if msg.Stale(session.RouteTasks, m.mount) {
			return m, nil
		}
		if cmd := ui.AfterLoad(msg, m.view); cmd != nil {
			return m, cmd
		}
		if err := m.view.Err(); err != nil {
			m.err = apperrors.GetUserMessage(err)
		}
		return m, m.refresh()

	case mutatedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		if msg.err != nil {
			m.err = apperrors.GetUserMessage(msg.err)
			return m, m.refresh()
		}
		m.err = ""
		return m, tea.Batch(m.refresh(), ui.Status(msg.status))

	case spinner.TickMsg:
		if m.view.Status() != view.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.handleAddKeys(msg)
		case modeSearch:
			return m.handleSearchKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.view.Status() != view.StatusLoaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.err = ""
		m.titleInput.Reset()
		m.dueInput.Reset()
		m.dueInput.Blur()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(Item)
		if !ok {
			return m, nil
		}
		return m, m.toggle(item.Task.ID)

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(Item)
		if !ok {
			return m, nil
		}
		return m, m.delete(item.Task.ID)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Mount()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.titleInput.Blur()
		m.dueInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		if m.titleInput.Focused() {
			m.titleInput.Blur()
			return m, m.dueInput.Focus()
		}
		m.dueInput.Blur()
		return m, m.titleInput.Focus()

	case "enter":
		title, err := view.ValidateTitle(m.titleInput.Value())
		if err != nil {
			m.err = apperrors.GetUserMessage(err)
			return m, nil
		}
		due, err := parseDue(m.dueInput.Value())
		if err != nil {
			m.err = apperrors.GetUserMessage(err)
			return m, nil
		}
		m.mode = modeList
		m.titleInput.Blur()
		m.dueInput.Blur()
		return m, m.create(title, due)
	}

	var cmd tea.Cmd
	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeList
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.query = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	return m, tea.Batch(cmd, m.refresh())
}

// parseDue parses the optional deadline field.
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := model.ParseTimestamp(s)
	if err != nil {
		return nil, apperrors.NewValidationError("dueDateTime", "invalid due date, use YYYY-MM-DD HH:MM")
	}
	return &t, nil
}

func (m Model) create(title string, due *time.Time) tea.Cmd {
	v, mount := m.view, m.mount
	return func() tea.Msg {
		_, err := v.Create(context.Background(), title, due)
		return mutatedMsg{mount: mount, status: "task added", err: err}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	v, mount := m.view, m.mount
	return func() tea.Msg {
		t, err := v.Toggle(context.Background(), id)
		status := "task reopened"
		if t.Completed {
			status = "task completed"
		}
		return mutatedMsg{mount: mount, status: status, err: err}
	}
}

func (m Model) delete(id string) tea.Cmd {
	v, mount := m.view, m.mount
	return func() tea.Msg {
		err := v.Delete(context.Background(), id)
		return mutatedMsg{mount: mount, status: "task deleted", err: err}
	}
}

// refresh rebuilds the list items from the view for the current query.
func (m *Model) refresh() tea.Cmd {
	tasks := m.view.Filter(m.query)
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	return m.list.SetItems(items)
}

// View renders the task screen.
func (m Model) View() string {
	switch m.view.Status() {
	case view.StatusLoading, view.StatusIdle:
		return ui.Centered(m.width, m.height, m.spinner.View()+" Loading tasks...")
	case view.StatusRedirected:
		return ""
	}

	var parts []string
	switch m.mode {
	case modeAdd:
		parts = append(parts, m.titleInput.View(), m.dueInput.View())
	case modeSearch:
		parts = append(parts, m.searchInput.View())
	default:
		if m.query != "" {
			parts = append(parts, theme.MutedStyle.Render("filter: "+m.query))
		}
	}

	if len(m.list.Items()) == 0 {
		parts = append(parts, m.renderEmptyState())
	} else {
		parts = append(parts, m.list.View())
	}

	if m.err != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderEmptyState() string {
	text := "No tasks yet.\nPress n to add your first task."
	if m.query != "" {
		text = "No matching tasks."
	}
	return ui.Centered(m.width, m.height-4, text)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	m.titleInput.Width = width - 6
	m.dueInput.Width = width - 6
	m.searchInput.Width = width - 6
}
