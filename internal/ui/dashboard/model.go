// Package dashboard renders the profile summary and the navigation cards.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/theme"
	"github.com/nhle/studentpro/internal/ui"
	"github.com/nhle/studentpro/internal/view"
)

// Model is the dashboard screen.
type Model struct {
	view    *view.Dashboard
	keys    *keys.KeyMap
	spinner spinner.Model
	mount   int
	cursor  int
	now     func() time.Time
	width   int
	height  int
}

// New creates the dashboard screen over v.
func New(v *view.Dashboard, k *keys.KeyMap) Model {
	return Model{
		view:    v,
		keys:    k,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		now:     time.Now,
		width:   80,
		height:  24,
	}
}

// Mount starts a fresh load.
func (m *Model) Mount() tea.Cmd {
	m.mount++
	return tea.Batch(m.spinner.Tick, ui.Load(session.RouteDashboard, m.mount, m.view))
}

// Unmount cancels the in-flight load.
func (m *Model) Unmount() {
	m.mount++
	m.view.Unmount()
}

// CapturesInput is always false; the dashboard has no text fields.
func (m Model) CapturesInput() bool {
	return false
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.LoadedMsg:
		if msg.Stale(session.RouteDashboard, m.mount) {
			return m, nil
		}
		return m, ui.AfterLoad(msg, m.view)

	case spinner.TickMsg:
		if m.view.Status() != view.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		cards := m.view.Cards()
		switch {
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(cards)
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + len(cards) - 1) % len(cards)
		case key.Matches(msg, m.keys.Select):
			if r := cards[m.cursor].Route; r != "" {
				return m, ui.Navigate(r)
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Mount()
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	switch m.view.Status() {
	case view.StatusLoading, view.StatusIdle:
		return ui.Centered(m.width, m.height, m.spinner.View()+" Loading dashboard...")
	case view.StatusRedirected:
		return ""
	}

	name := m.view.DisplayName()
	greeting := theme.TitleStyle.Render(fmt.Sprintf("%s, %s", view.Greeting(m.now()), name))
	subtitle := theme.MutedStyle.Render("Here's what's happening with your studies today")

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		greeting,
		subtitle,
		"",
		m.renderStats(),
		"",
		m.renderCards(),
	))
}

func (m Model) renderStats() string {
	p := m.view.Profile()
	if p == nil {
		return ""
	}
	stats := []string{
		theme.StatStyle.Render(fmt.Sprintf("%d", p.TasksCompleted)) + " tasks done",
		theme.StatStyle.Render(fmt.Sprintf("%d", p.Streak)) + " day streak",
		theme.StatStyle.Render(fmt.Sprintf("%.1fh", p.HoursToday)) + " studied today",
		theme.StatStyle.Render(fmt.Sprintf("%.0f%%", p.Progress)) + " progress",
	}
	return strings.Join(stats, "   ")
}

func (m Model) renderCards() string {
	cards := m.view.Cards()
	width := (m.width - 8) / 2
	if width < 30 {
		width = 30
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		body := []string{lipgloss.NewStyle().Bold(true).Render(c.Title), theme.MutedStyle.Render(c.Description)}
		if c.Stat != "" {
			body = append(body, theme.StatStyle.Render(c.Stat)+" "+c.StatLabel)
		}
		action := c.Action
		if c.Route != "" {
			action = "› " + action
		}
		body = append(body, theme.HelpStyle.Render(action))

		style := theme.CardStyle
		if i == m.cursor {
			style = theme.SelectedCardStyle
		}
		rendered[i] = style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
	}

	var rows []string
	for i := 0; i < len(rendered); i += 2 {
		if i+1 < len(rendered) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i], " ", rendered[i+1]))
		} else {
			rows = append(rows, rendered[i])
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
