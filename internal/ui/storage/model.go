// Package storage lists the user's stored files.
package storage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/keys"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/theme"
	"github.com/nhle/studentpro/internal/ui"
	"github.com/nhle/studentpro/internal/view"
)

// Item wraps a storage file for bubbles/list.
type Item struct {
	File model.StorageFile
}

// FilterValue returns the file name.
func (i Item) FilterValue() string { return i.File.Name }

type delegate struct{}

func (delegate) Height() int { return 1 }
func (delegate) Spacing() int { return 0 }
func (delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	f := it.File

	badge := theme.BadgeStyle(f.Type).Render(typeLabel(f))
	size := theme.MutedStyle.Render(view.FormatSize(f.Size))
	added := ""
	if !f.CreatedAt.IsZero() {
		added = theme.MutedStyle.Render("  " + humanize.Time(f.CreatedAt))
	}
	download := ""
	if f.HasDownload() {
		download = theme.DueDateStyle.Render("  ↓")
	}

	line := fmt.Sprintf("%s %s  %s%s%s", badge, f.Name, size, added, download)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

func typeLabel(f model.StorageFile) string {
	if f.IsPDF() {
		return "PDF"
	}
	if f.Type == "" {
		return "FILE"
	}
	return f.Type
}

// Model is the storage screen.
type Model struct {
	view        *view.Storage
	keys        *keys.KeyMap
	list        list.Model
	spinner     spinner.Model
	searchInput textinput.Model
	searching   bool
	query       string
	err         string
	mount       int
	width       int
	height      int
}

// New creates the storage screen over v.
func New(v *view.Storage, k *keys.KeyMap) Model {
	l := list.New([]list.Item{}, delegate{}, 80, 20)
	l.Title = "Student Storage"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search files..."
	si.Prompt = "/ "

	return Model{
		view:        v,
		keys:        k,
		list:        l,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		searchInput: si,
		width:       80,
		height:      24,
	}
}

// Mount starts a fresh load.
func (m *Model) Mount() tea.Cmd {
	m.mount++
	m.err = ""
	m.searching = false
	return tea.Batch(m.spinner.Tick, ui.Load(session.RouteStorage, m.mount, m.view))
}

// Unmount cancels the in-flight load.
func (m *Model) Unmount() {
	m.mount++
	m.view.Unmount()
}

// CapturesInput reports whether the search field has focus.
func (m Model) CapturesInput() bool {
	return m.searching
}

// Update handles messages for the storage screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.LoadedMsg:
		if msg.Stale(session.RouteStorage, m.mount) {
			return m, nil
		}
		if cmd := ui.AfterLoad(msg, m.view); cmd != nil {
			return m, cmd
		}
		if err := m.view.Err(); err != nil {
			m.err = apperrors.GetUserMessage(err)
		}
		return m, m.refresh()

	case spinner.TickMsg:
		if m.view.Status() != view.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.searchInput.SetValue(m.query)
			return m, m.searchInput.Focus()
		case key.Matches(msg, m.keys.Select):
			it, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			if !it.File.HasDownload() {
				return m, ui.Status("no download link for " + it.File.Name)
			}
			return m, ui.OpenURL(it.File.URL)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Mount()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
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

func (m *Model) refresh() tea.Cmd {
	files := m.view.Filter(m.query)
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = Item{File: f}
	}
	return m.list.SetItems(items)
}

// View renders the storage screen.
func (m Model) View() string {
	switch m.view.Status() {
	case view.StatusLoading, view.StatusIdle:
		return ui.Centered(m.width, m.height, m.spinner.View()+" Loading files...")
	case view.StatusRedirected:
		return ""
	}

	var parts []string
	if m.searching {
		parts = append(parts, m.searchInput.View())
	} else if m.query != "" {
		parts = append(parts, theme.MutedStyle.Render("filter: "+m.query))
	}

	if len(m.list.Items()) == 0 {
		text := "No files yet."
		if m.query != "" {
			text = "No files match your search."
		}
		parts = append(parts, ui.Centered(m.width, m.height-3, text))
	} else {
		parts = append(parts, m.list.View())
	}

	if m.err != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 6
}
