// Package practice lists practice platforms and opens them in the browser.
package practice

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
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

// Item wraps a practice link for bubbles/list.
type Item struct {
	Link model.PracticeLink
}

// FilterValue returns the link name.
func (i Item) FilterValue() string { return i.Link.Name }

type delegate struct{}

func (delegate) Height() int { return 2 }
func (delegate) Spacing() int { return 1 }
func (delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HintColor(it.Link.ColorHint())).
		Render(it.Link.Name)
	url := theme.MutedStyle.Render(it.Link.URL)
	line := fmt.Sprintf("%s  %s\n%s", name, url, it.Link.Description)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model is the practice screen.
type Model struct {
	view    *view.Practice
	keys    *keys.KeyMap
	list    list.Model
	spinner spinner.Model
	err     string
	mount   int
	width   int
	height  int
}

// New creates the practice screen over v.
func New(v *view.Practice, k *keys.KeyMap) Model {
	l := list.New([]list.Item{}, delegate{}, 80, 20)
	l.Title = "Practice Platforms"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		view:    v,
		keys:    k,
		list:    l,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   80,
		height:  24,
	}
}

// Mount starts a fresh load.
func (m *Model) Mount() tea.Cmd {
	m.mount++
	m.err = ""
	return tea.Batch(m.spinner.Tick, ui.Load(session.RoutePractice, m.mount, m.view))
}

// Unmount cancels the in-flight load.
func (m *Model) Unmount() {
	m.mount++
	m.view.Unmount()
}

// CapturesInput is always false.
func (m Model) CapturesInput() bool {
	return false
}

// Update handles messages for the practice screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.LoadedMsg:
		if msg.Stale(session.RoutePractice, m.mount) {
			return m, nil
		}
		if cmd := ui.AfterLoad(msg, m.view); cmd != nil {
			return m, cmd
		}
		m.err = ""
		if err := m.view.Err(); err != nil {
			m.err = apperrors.GetUserMessage(err)
		}
		links := m.view.Links()
		items := make([]list.Item, len(links))
		for i, l := range links {
			items[i] = Item{Link: l}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if m.view.Status() != view.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Select):
			if it, ok := m.list.SelectedItem().(Item); ok {
				return m, ui.OpenURL(it.Link.URL)
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Mount()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the practice screen.
func (m Model) View() string {
	switch m.view.Status() {
	case view.StatusLoading, view.StatusIdle:
		return ui.Centered(m.width, m.height, m.spinner.View()+" Loading platforms...")
	case view.StatusRedirected:
		return ""
	}

	if m.err == "" {
		return m.list.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), theme.ErrorStyle.Render(m.err))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1)
}
