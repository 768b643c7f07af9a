package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for report titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// LabelStyle is used for field names in a report.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Width(16)

// PanelStyle wraps a report section.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for hints and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ScoreStyle colors a day score against the user's target, both in hours.
func ScoreStyle(score24, targetHours float64) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case score24 >= targetHours:
		return base.Foreground(ColorGreen)
	case score24 >= targetHours/2:
		return base.Foreground(ColorYellow)
	case score24 >= 1:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorRed)
	}
}

// StreakStyle highlights a running streak.
func StreakStyle(current int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if current == 0 {
		return base.Foreground(ColorGray)
	}
	return base.Foreground(ColorMagenta)
}

// GoalStyle renders a goal name in its color tag. Tags that are not hex
// colors fall back to blue.
func GoalStyle(colorTag string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	tag := strings.TrimSpace(colorTag)
	if len(tag) != 7 || !strings.HasPrefix(tag, "#") {
		return base.Foreground(ColorBlue)
	}
	return base.Foreground(lipgloss.Color(tag))
}
