// Package auth implements the login and register screens.
package auth

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/studentpro/internal/theme"
)

// formSeq numbers form instances across both screens.
var formSeq atomic.Int64

func nextFormID() int {
	return int(formSeq.Add(1))
}

// resultMsg carries the outcome of a submit back to the screen that sent
// it. form identifies the form instance so a late result for a replaced
// form is ignored.
type resultMsg struct {
	form int
	err  error
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func formWidth(width int) int {
	w := width - 8
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}

func render(title, subtitle, form, errText, footer string, busy bool) string {
	parts := []string{
		theme.TitleStyle.Render(title),
		theme.MutedStyle.Render(subtitle),
		"",
		form,
	}
	if busy {
		parts = append(parts, theme.MutedStyle.Render("Please wait..."))
	}
	if errText != "" {
		parts = append(parts, theme.ErrorStyle.Render(errText))
	}
	parts = append(parts, "", theme.HelpStyle.Render(footer))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
