package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/lifetrack/internal/aggregate"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/tests/testutil"
)

func plain() Renderer { return New(model.ReportConfig{Color: false}) }

func TestDay(t *testing.T) {
	day := model.NewGoalAlignedDay("u1", "2024-03-10")
	day.TotalAlignedMinutes = 60
	day.TaskMinutes = 40
	day.HabitMinutes = 20
	day.Score24 = 1
	day.ScorePercentage = 4.2
	day.CurrentStreak = 2
	day.LongestStreak = 5
	day.AverageMindfulRating = 3.5
	day.GoalBreakdown = []model.GoalBreakdown{
		{GoalID: "G1", Name: "deep work", Minutes: 40, PercentageOfDay: 67, TargetMinutesPerDay: testutil.IntPtr(90)},
		{GoalID: "G2", Name: "fitness", Minutes: 20, PercentageOfDay: 33},
	}

	out := plain().Day(&aggregate.DaySummary{GoalAlignedDay: day})

	assert.Contains(t, out, "Goal-aligned day 2024-03-10")
	assert.Contains(t, out, "1.0 / 24h (4.2%)")
	assert.Contains(t, out, "Target:          8.0h")
	assert.Contains(t, out, "2 (longest 5)")
	assert.Contains(t, out, "60 min (blocks 0, habits 20, tasks 40)")
	assert.Contains(t, out, "avg rating 3.5")
	assert.Contains(t, out, "deep work    40 min   67%  █████████████  target 90 min")
	assert.Contains(t, out, "fitness      20 min   33%  ██████")
	assert.NotContains(t, out, "\x1b[")
}

func TestDayWithoutActivity(t *testing.T) {
	day := model.NewGoalAlignedDay("u1", "2024-03-10")

	out := plain().Day(&aggregate.DaySummary{GoalAlignedDay: day})

	assert.Contains(t, out, "avg rating n/a")
	assert.Contains(t, out, "No goal-aligned activity.")
}

func TestWeek(t *testing.T) {
	week := aggregate.Summarize([]model.GoalAlignedDay{
		{Date: "2024-03-10", Score24: 2, ScorePercentage: 8.3, TotalAlignedMinutes: 120},
		{Date: "2024-03-12", Score24: 5, ScorePercentage: 20.8, TotalAlignedMinutes: 300},
	})
	week.WeekStart, week.WeekEnd = "2024-03-10", "2024-03-16"

	out := plain().Week(&week)

	assert.Contains(t, out, "Week 2024-03-10 .. 2024-03-16")
	assert.Contains(t, out, "2024-03-12:        5.0h   20.8%   300 min")
	assert.Contains(t, out, "Total:           420 min")
	assert.Contains(t, out, "Average:         3.5h")
	assert.Contains(t, out, "Best day:        2024-03-12")

	empty := aggregate.Summarize(nil)
	assert.Contains(t, plain().Week(&empty), "No days recorded this week.")
}
