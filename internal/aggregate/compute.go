package aggregate

import (
	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
)

// DayInputs is everything ComputeDay needs for one user and day.
type DayInputs struct {
	UserID   string
	Date     string
	Window   businessday.Window
	Goals    []model.Goal
	Activity Activity

	// Baseline is the streak state inherited from the latest earlier day.
	Baseline StreakState
	Options  Options
}

// ComputeDay derives the full day record from its inputs. Identity fields
// (ID, Version, timestamps) are left zero for the caller to fill in.
func ComputeDay(in DayInputs) model.GoalAlignedDay {
	dist := Distribute(in.Activity, in.Window, in.Options)
	score := Score(dist, model.NewGoalRegistry(in.Goals))

	baseline := in.Baseline
	if baseline.TargetMinutesPerDay <= 0 {
		baseline.TargetMinutesPerDay = model.DefaultTargetMinutesPerDay
	}
	streak := ApplyStreak(baseline, score.Score24)

	day := model.NewGoalAlignedDay(in.UserID, in.Date)
	day.TasksGoalAlignedCount = dist.TasksGoalAlignedCount
	day.BlockMinutes = dist.BlockMinutes
	day.HabitMinutes = dist.HabitMinutes
	day.TaskMinutes = dist.TaskMinutes
	day.TotalAlignedMinutes = score.TotalAlignedMinutes
	day.Score24 = score.Score24
	day.ScorePercentage = score.ScorePercentage
	day.GoalBreakdown = score.GoalBreakdown
	day.MindfulTaskCount = dist.MindfulTaskCount
	day.MindfulMinutes = dist.MindfulMinutes
	day.AverageMindfulRating = dist.AverageMindfulRating()
	day.CurrentStreak = streak.Current
	day.LongestStreak = streak.Longest
	day.TargetMinutesPerDay = streak.TargetMinutesPerDay
	day.BaseCurrentStreak = baseline.Current
	day.BaseLongestStreak = baseline.Longest
	return day
}
