package tasks

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/theme"
)

// Item wraps a model.Task so it can be used in a bubbles/list.
type Item struct {
	Task model.Task
}

// FilterValue returns the string used for filtering.
func (i Item) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	t := it.Task
	now := time.Now
	if d.now != nil {
		now = d.now
	}

	prefix := "○"
	title := t.Title
	if t.Completed {
		prefix = "✓"
		title = theme.DimmedStyle.Render(title)
	}

	due := ""
	if t.DueDateTime != nil {
		due = theme.DueDateStyle.Render(" " + t.DueDateTime.Local().Format("Jan 02 15:04"))
	}
	overdue := ""
	if t.IsOverdue(now()) {
		overdue = theme.OverdueStyle.Render(" OVERDUE")
	}
	created := ""
	if !t.CreatedAt.IsZero() {
		created = theme.MutedStyle.Render("  " + relativeTime(now().Sub(t.CreatedAt)))
	}

	line := fmt.Sprintf("%s %s%s%s%s", prefix, title, due, overdue, created)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a short "3h ago" style age.
func relativeTime(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}
