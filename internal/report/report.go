// Package report renders day and week aggregates for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/lifetrack/internal/aggregate"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/theme"
)

// barWidth is the length of a full (100%) breakdown bar.
const barWidth = 20

// Renderer formats aggregates. With Color off every style is skipped and
// the output is plain text.
type Renderer struct {
	Color bool
}

// New returns a Renderer configured from the report settings.
func New(cfg model.ReportConfig) Renderer {
	return Renderer{Color: cfg.Color}
}

func (r Renderer) paint(style lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return style.Render(text)
}

func (r Renderer) field(label, value string) string {
	return fmt.Sprintf("%s %s", r.paint(theme.LabelStyle, fmt.Sprintf("%-16s", label+":")), value)
}

// Day renders a computed day.
func (r Renderer) Day(s *aggregate.DaySummary) string {
	var sections []string

	sections = append(sections, r.paint(theme.HeaderStyle, "Goal-aligned day "+s.Date))
	sections = append(sections, "")

	score := fmt.Sprintf("%.1f / 24h (%.1f%%)", s.Score24, s.ScorePercentage)
	sections = append(sections,
		r.field("Score", r.paint(theme.ScoreStyle(s.Score24, s.TargetHours()), score)),
		r.field("Target", fmt.Sprintf("%.1fh", s.TargetHours())),
		r.field("Streak", fmt.Sprintf("%s (longest %d)",
			r.paint(theme.StreakStyle(s.CurrentStreak), fmt.Sprintf("%d", s.CurrentStreak)),
			s.LongestStreak)),
		r.field("Aligned", fmt.Sprintf("%d min (blocks %d, habits %d, tasks %d)",
			s.TotalAlignedMinutes, s.BlockMinutes, s.HabitMinutes, s.TaskMinutes)),
		r.field("Tasks", fmt.Sprintf("%d goal-aligned", s.TasksGoalAlignedCount)),
	)

	rating := "n/a"
	if s.MindfulRatingKnown() {
		rating = fmt.Sprintf("%.1f", s.AverageMindfulRating)
	}
	sections = append(sections, r.field("Mindful",
		fmt.Sprintf("%d tasks, %d min, avg rating %s", s.MindfulTaskCount, s.MindfulMinutes, rating)))

	sections = append(sections, "")
	sections = append(sections, r.breakdown(s.GoalBreakdown))

	return strings.Join(sections, "\n")
}

func (r Renderer) breakdown(goals []model.GoalBreakdown) string {
	if len(goals) == 0 {
		return r.paint(theme.HelpStyle, "No goal-aligned activity.")
	}

	nameWidth := 0
	for _, g := range goals {
		nameWidth = max(nameWidth, lipgloss.Width(g.Name))
	}

	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		name := g.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(g.Name))
		bar := strings.Repeat("█", g.PercentageOfDay*barWidth/100)
		line := fmt.Sprintf("%s  %4d min  %3d%%  %s",
			r.paint(theme.GoalStyle(g.ColorTag), name), g.Minutes, g.PercentageOfDay, bar)
		if g.TargetMinutesPerDay != nil {
			line += fmt.Sprintf("  target %d min", *g.TargetMinutesPerDay)
		}
		lines = append(lines, line)
	}
	return r.paint(theme.PanelStyle, strings.Join(lines, "\n"))
}

// Week renders a weekly summary.
func (r Renderer) Week(s *model.WeekSummary) string {
	var sections []string

	sections = append(sections, r.paint(theme.HeaderStyle,
		fmt.Sprintf("Week %s .. %s", s.WeekStart, s.WeekEnd)))
	sections = append(sections, "")

	if len(s.Days) == 0 {
		sections = append(sections, r.paint(theme.HelpStyle, "No days recorded this week."))
		return strings.Join(sections, "\n")
	}

	for _, d := range s.Days {
		sections = append(sections, r.field(d.Date,
			fmt.Sprintf("%5.1fh  %5.1f%%  %4d min", d.Score24, d.ScorePercentage, d.TotalAlignedMinutes)))
	}
	sections = append(sections, "")
	sections = append(sections,
		r.field("Total", fmt.Sprintf("%d min", s.TotalAlignedMinutes)),
		r.field("Average", fmt.Sprintf("%.1fh", s.AverageScore24)),
		r.field("Best day", s.BestDay),
	)
	return strings.Join(sections, "\n")
}
