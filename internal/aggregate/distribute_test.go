package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/tests/testutil"
)

const testDate = "2024-03-10"

func testWindow(t *testing.T) businessday.Window {
	t.Helper()
	return businessday.WindowFor(testutil.Day(t, testDate))
}

func TestDistributeLinkedTaskCountedOnceViaBlock(t *testing.T) {
	w := testWindow(t)
	a := Activity{
		Entries: []model.TimeBlockEntry{
			{ID: "e1", StartTime: testutil.At(t, testDate, 9, 0), DurationMinutes: 30, GoalID: "G1", TaskID: "T1"},
		},
		Tasks: []model.Task{
			testutil.CompletedTask("T1", testutil.At(t, testDate, 9, 30), 30, "G1"),
		},
	}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 30, d.BlockMinutes)
	assert.Equal(t, 0, d.TaskMinutes)
	assert.Equal(t, 0, d.TasksGoalAlignedCount)
	assert.Equal(t, 30.0, d.PerGoalMinutes["G1"])
	assert.Equal(t, 1, d.RatedTasks, "linked task still counts towards the mindful average")
}

func TestDistributeSplitsTaskAcrossGoals(t *testing.T) {
	w := testWindow(t)
	a := Activity{Tasks: []model.Task{
		testutil.CompletedTask("T1", testutil.At(t, testDate, 10, 0), 30, "G1", "G2"),
	}}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 30, d.TaskMinutes)
	assert.Equal(t, 1, d.TasksGoalAlignedCount)
	assert.Equal(t, 15.0, d.PerGoalMinutes["G1"])
	assert.Equal(t, 15.0, d.PerGoalMinutes["G2"])
}

func TestDistributeKeepsFractionalShares(t *testing.T) {
	w := testWindow(t)
	a := Activity{Tasks: []model.Task{
		testutil.CompletedTask("T1", testutil.At(t, testDate, 10, 0), 25, "G1", "G2", "G3"),
	}}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 25, d.TaskMinutes)
	assert.InDelta(t, 25.0/3, d.PerGoalMinutes["G1"], 1e-9)
	assert.InDelta(t, 25.0/3, d.PerGoalMinutes["G3"], 1e-9)
}

func TestDistributeIgnoresBlocksWithoutGoal(t *testing.T) {
	w := testWindow(t)
	a := Activity{
		Entries: []model.TimeBlockEntry{
			{ID: "legacy", StartTime: testutil.At(t, testDate, 8, 0), DurationMinutes: 45, TaskID: "T2"},
			{ID: "empty", StartTime: testutil.At(t, testDate, 9, 0), DurationMinutes: 0, GoalID: "G1", TaskID: "T3"},
		},
		Tasks: []model.Task{
			testutil.CompletedTask("T2", testutil.At(t, testDate, 9, 0), 20, "G1"),
			testutil.CompletedTask("T3", testutil.At(t, testDate, 9, 0), 10, "G1"),
		},
	}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 0, d.BlockMinutes)
	assert.Equal(t, 30, d.TaskMinutes, "tasks behind non-contributing blocks are credited directly")
	assert.Equal(t, 2, d.TasksGoalAlignedCount)
}

func TestDistributeClipsBlocksToWindow(t *testing.T) {
	w := testWindow(t)
	a := Activity{
		Entries: []model.TimeBlockEntry{
			// 22:00 the evening before, 180 minutes: one hour lands today.
			{ID: "carry", StartTime: w.Start.Add(-2 * time.Hour), DurationMinutes: 180, GoalID: "G1", TaskID: "T1"},
			// 23:00 today, 90 minutes: one hour lands today.
			{ID: "spill", StartTime: w.Start.Add(23 * time.Hour), DurationMinutes: 90, GoalID: "G2"},
			{ID: "before", StartTime: w.Start.Add(-3 * time.Hour), DurationMinutes: 60, GoalID: "G1", TaskID: "T2"},
		},
		Tasks: []model.Task{
			testutil.CompletedTask("T1", testutil.At(t, testDate, 0, 30), 20, "G1"),
			testutil.CompletedTask("T2", testutil.At(t, testDate, 8, 0), 15, "G1"),
		},
	}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 120, d.BlockMinutes)
	assert.Equal(t, 60.0, d.PerGoalMinutes["G1"])
	assert.Equal(t, 60.0, d.PerGoalMinutes["G2"])
	assert.Equal(t, 15, d.TaskMinutes, "a block entirely outside the day does not suppress its task")
	assert.Equal(t, 1, d.TasksGoalAlignedCount)
}

func TestDistributeTaskFilters(t *testing.T) {
	w := testWindow(t)
	untagged := testutil.CompletedTask("T2", testutil.At(t, testDate, 11, 0), 40)
	open := testutil.CompletedTask("T3", testutil.At(t, testDate, 11, 0), 40, "G1")
	open.CompletedAt = nil

	a := Activity{Tasks: []model.Task{
		testutil.CompletedTask("T1", testutil.At(t, testDate, 12, 0), 0, "G1"),
		untagged,
		open,
		testutil.CompletedTask("T4", w.End.Add(1), 40, "G1"),
		testutil.CompletedTask("T5", w.Start.Add(-1), 40, "G1"),
	}}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, DefaultTaskMinutes, d.TaskMinutes, "missing duration falls back to the default")
	assert.Equal(t, 1, d.TasksGoalAlignedCount)
	assert.Equal(t, 1, d.RatedTasks)
}

func TestDistributeHabitPass(t *testing.T) {
	w := testWindow(t)
	morning := testutil.At(t, testDate, 7, 0)
	evening := testutil.At(t, testDate, 21, 0)

	habits := []model.Habit{
		{
			ID: "H1", GoalID: "G1", DefaultDurationMinutes: 15,
			Checkins: []model.HabitCheckin{
				testutil.Checkin("H1", "", morning, 20),
				testutil.Checkin("H1", "", evening, 20), // same business day: duplicate
				{HabitID: "H1", Date: morning.AddDate(0, 0, -1), Completed: true},
			},
		},
		{
			ID: "H2", GoalID: "G2", DefaultDurationMinutes: 15,
			Checkins: []model.HabitCheckin{
				{HabitID: "H2", Date: morning, Completed: true},
			},
		},
		{
			ID: "H3",
			Checkins: []model.HabitCheckin{
				{HabitID: "H3", GoalID: "G3", Date: morning, Completed: true},
				{HabitID: "H3", GoalID: "G3", Date: evening, Completed: false},
			},
		},
		{
			ID: "H4",
			Checkins: []model.HabitCheckin{
				testutil.Checkin("H4", "", morning, 50),
			},
		},
	}

	d := Distribute(Activity{Habits: habits}, w, DefaultOptions())

	assert.Equal(t, 20+15+DefaultHabitMinutes, d.HabitMinutes)
	assert.Equal(t, 20.0, d.PerGoalMinutes["G1"])
	assert.Equal(t, 15.0, d.PerGoalMinutes["G2"])
	assert.Equal(t, float64(DefaultHabitMinutes), d.PerGoalMinutes["G3"])
	assert.NotContains(t, d.PerGoalMinutes, model.GoalID(""))
}

func TestDistributeHabitFallbackFromOptions(t *testing.T) {
	w := testWindow(t)
	habits := []model.Habit{{
		ID: "H1", GoalID: "G1",
		Checkins: []model.HabitCheckin{{HabitID: "H1", Date: testutil.At(t, testDate, 6, 0), Completed: true}},
	}}

	d := Distribute(Activity{Habits: habits}, w, Options{DefaultTaskMinutes: 25, DefaultHabitMinutes: 10})
	assert.Equal(t, 10, d.HabitMinutes)
}

func TestDistributeMindfulTasks(t *testing.T) {
	w := testWindow(t)
	at := testutil.At(t, testDate, 14, 0)

	rated := func(id string, minutes int, rating *int, goals ...string) model.Task {
		task := testutil.CompletedTask(id, at, minutes, goals...)
		task.MindfulRating = rating
		return task
	}

	a := Activity{
		Entries: []model.TimeBlockEntry{
			{ID: "e1", StartTime: at, DurationMinutes: 60, GoalID: "G1", TaskID: "T5"},
		},
		Tasks: []model.Task{
			rated("T1", 20, testutil.IntPtr(5), "G1", "G2"),
			rated("T2", 30, testutil.IntPtr(4), "G2"),
			rated("T3", 10, testutil.IntPtr(2), "G1"),
			rated("T4", 10, nil, "G1"),
			rated("T5", 60, testutil.IntPtr(5), "G1"),
		},
	}

	d := Distribute(a, w, DefaultOptions())

	assert.Equal(t, 2, d.MindfulTaskCount, "linked mindful task is not credited twice")
	assert.Equal(t, 50, d.MindfulMinutes)
	assert.Equal(t, 10.0, d.PerGoalMindfulMinutes["G1"])
	assert.Equal(t, 40.0, d.PerGoalMindfulMinutes["G2"])

	// (5 + 4 + 2 + 3 + 5) / 5 = 3.8
	assert.Equal(t, 3.8, d.AverageMindfulRating())
}

func TestAverageMindfulRatingWithoutTasks(t *testing.T) {
	d := Distribute(Activity{}, testWindow(t), DefaultOptions())
	assert.Equal(t, 0.0, d.AverageMindfulRating())
}

func TestAverageMindfulRatingRounding(t *testing.T) {
	d := Distribution{RatingSum: 11, RatedTasks: 3}
	assert.Equal(t, 3.7, d.AverageMindfulRating())

	d = Distribution{RatingSum: 9, RatedTasks: 2}
	assert.Equal(t, 4.5, d.AverageMindfulRating())
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(model.AggregationConfig{DefaultTaskMinutes: 40})
	require.Equal(t, 40, opts.DefaultTaskMinutes)
	assert.Equal(t, DefaultHabitMinutes, opts.DefaultHabitMinutes)
}
