package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		score, target float64
		want          lipgloss.TerminalColor
	}{
		{8, 8, ColorGreen},
		{9.5, 8, ColorGreen},
		{4, 8, ColorYellow},
		{1, 8, ColorOrange},
		{0.9, 8, ColorRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreStyle(tt.score, tt.target).GetForeground(), "score %.1f", tt.score)
	}
}

func TestStreakStyle(t *testing.T) {
	assert.Equal(t, lipgloss.TerminalColor(ColorGray), StreakStyle(0).GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(ColorMagenta), StreakStyle(3).GetForeground())
}

func TestGoalStyle(t *testing.T) {
	assert.Equal(t, lipgloss.TerminalColor(lipgloss.Color("#FF0000")), GoalStyle("#FF0000").GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(ColorBlue), GoalStyle("red").GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(ColorBlue), GoalStyle("").GetForeground())
}
