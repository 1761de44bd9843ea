package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorNavy    = lipgloss.AdaptiveColor{Dark: "#3B5B8C", Light: "#1E3A5F"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorSky     = lipgloss.AdaptiveColor{Dark: "#74C0FC", Light: "#3182CE"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorNavy).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps overlays and forms.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle frames a dashboard tile.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle frames the focused dashboard tile.
var SelectedCardStyle = CardStyle.
	BorderForeground(ColorBlue)

// TitleStyle is used for screen titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders completed or secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// MutedStyle renders secondary text without strikethrough.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DueDateStyle renders a task deadline.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorSky)

// OverdueStyle flags open tasks past their deadline.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// ErrorStyle renders inline error text under forms and lists.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// StatStyle renders dashboard numbers.
var StatStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// BadgeStyle renders a short file type label.
func BadgeStyle(fileType string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	t := strings.ToLower(fileType)
	switch {
	case strings.Contains(t, "pdf"):
		return base.Foreground(ColorRed)
	case strings.HasPrefix(t, "image/"):
		return base.Foreground(ColorMagenta)
	case strings.Contains(t, "word"), strings.Contains(t, "document"):
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// HintColor maps a link color hint such as "from-amber-500 to-orange-600"
// to a palette color, keyed on the first color family named.
func HintColor(hint string) lipgloss.AdaptiveColor {
	for _, part := range strings.Fields(hint) {
		part = strings.TrimPrefix(part, "from-")
		switch {
		case strings.HasPrefix(part, "amber"), strings.HasPrefix(part, "orange"):
			return ColorOrange
		case strings.HasPrefix(part, "emerald"), strings.HasPrefix(part, "green"):
			return ColorGreen
		case strings.HasPrefix(part, "red"), strings.HasPrefix(part, "rose"):
			return ColorRed
		case strings.HasPrefix(part, "blue"), strings.HasPrefix(part, "indigo"):
			return ColorBlue
		case strings.HasPrefix(part, "sky"):
			return ColorSky
		case strings.HasPrefix(part, "gray"):
			return ColorGray
		case strings.HasPrefix(part, "primary"), strings.HasPrefix(part, "navy"):
			return ColorNavy
		}
	}
	return ColorNavy
}
