package aggregate

import (
	"time"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
)

// Defaults applied when an activity record omits a value.
const (
	DefaultTaskMinutes   = 25
	DefaultHabitMinutes  = 30
	DefaultMindfulRating = 3

	// MindfulThreshold is the lowest rating that counts a task as mindful.
	MindfulThreshold = 4
)

// Options holds the duration fallbacks used by Distribute.
type Options struct {
	DefaultTaskMinutes  int
	DefaultHabitMinutes int
}

// DefaultOptions returns the built-in fallbacks.
func DefaultOptions() Options {
	return Options{
		DefaultTaskMinutes:  DefaultTaskMinutes,
		DefaultHabitMinutes: DefaultHabitMinutes,
	}
}

// OptionsFromConfig maps the aggregation config section onto Options.
func OptionsFromConfig(cfg model.AggregationConfig) Options {
	opts := DefaultOptions()
	if cfg.DefaultTaskMinutes > 0 {
		opts.DefaultTaskMinutes = cfg.DefaultTaskMinutes
	}
	if cfg.DefaultHabitMinutes > 0 {
		opts.DefaultHabitMinutes = cfg.DefaultHabitMinutes
	}
	return opts
}

// Activity is the raw material of one day, as returned by the sources.
type Activity struct {
	Tasks   []model.Task
	Entries []model.TimeBlockEntry
	Habits  []model.Habit
}

// Distribution is the deduplicated, goal-credited view of a day's activity.
// Per-goal minutes stay fractional until the breakdown is assembled.
type Distribution struct {
	BlockMinutes          int
	HabitMinutes          int
	TaskMinutes           int
	TasksGoalAlignedCount int

	PerGoalMinutes        map[model.GoalID]float64
	PerGoalMindfulMinutes map[model.GoalID]float64

	MindfulTaskCount int
	MindfulMinutes   int

	// RatingSum and RatedTasks feed AverageMindfulRating. They cover every
	// qualifying task, including those whose minutes came from a block.
	RatingSum  int
	RatedTasks int
}

// RawMinutes is the uncapped sum of all three streams.
func (d Distribution) RawMinutes() int {
	return d.BlockMinutes + d.HabitMinutes + d.TaskMinutes
}

// AverageMindfulRating returns the mean rating rounded to one decimal,
// clamped to 1..5, or 0 when no task qualified.
func (d Distribution) AverageMindfulRating() float64 {
	if d.RatedTasks == 0 {
		return 0
	}
	avg := round1(float64(d.RatingSum) / float64(d.RatedTasks))
	switch {
	case avg < model.MindfulRatingMin:
		return model.MindfulRatingMin
	case avg > model.MindfulRatingMax:
		return model.MindfulRatingMax
	}
	return avg
}

// checkinKey identifies a check-in for duplicate suppression.
type checkinKey struct {
	habitID   string
	date      string
	completed bool
}

// Distribute merges the three activity streams of one day. Time-block
// entries are clipped to the window; tasks and check-ins are filtered
// against it.
func Distribute(a Activity, w businessday.Window, opts Options) Distribution {
	d := Distribution{
		PerGoalMinutes:        make(map[model.GoalID]float64),
		PerGoalMindfulMinutes: make(map[model.GoalID]float64),
	}

	linkedTaskIDs := make(map[string]bool)
	for _, e := range a.Entries {
		if e.GoalID.IsZero() {
			continue
		}
		minutes := entryMinutes(e, w)
		if minutes <= 0 {
			continue
		}
		d.BlockMinutes += minutes
		d.PerGoalMinutes[e.GoalID] += float64(minutes)
		if e.TaskID != "" {
			linkedTaskIDs[e.TaskID] = true
		}
	}

	seen := make(map[checkinKey]bool)
	for _, h := range a.Habits {
		for _, c := range h.Checkins {
			goal := h.EffectiveGoal(c)
			if !c.Completed || goal.IsZero() || !w.Contains(c.Date) {
				continue
			}
			key := checkinKey{habitID: h.ID, date: businessday.Format(c.Date), completed: c.Completed}
			if seen[key] {
				continue
			}
			seen[key] = true

			minutes := checkinMinutes(h, c, opts)
			d.HabitMinutes += minutes
			d.PerGoalMinutes[goal] += float64(minutes)
		}
	}

	for _, t := range a.Tasks {
		if len(t.GoalIDs) == 0 || !t.CompletedWithin(w.Start, w.End) {
			continue
		}

		rating := DefaultMindfulRating
		if t.MindfulRating != nil {
			rating = *t.MindfulRating
		}
		d.RatingSum += rating
		d.RatedTasks++

		if linkedTaskIDs[t.ID] {
			continue
		}

		minutes := t.DurationMinutes
		if minutes <= 0 {
			minutes = opts.DefaultTaskMinutes
		}
		d.TaskMinutes += minutes
		d.TasksGoalAlignedCount++

		share := float64(minutes) / float64(len(t.GoalIDs))
		mindful := t.MindfulRating != nil && *t.MindfulRating >= MindfulThreshold
		if mindful {
			d.MindfulTaskCount++
			d.MindfulMinutes += minutes
		}
		for _, g := range t.GoalIDs {
			d.PerGoalMinutes[g] += share
			if mindful {
				d.PerGoalMindfulMinutes[g] += share
			}
		}
	}

	return d
}

// entryMinutes is the part of an entry that falls inside the window. An
// entry running past midnight is split between the two days.
func entryMinutes(e model.TimeBlockEntry, w businessday.Window) int {
	if e.DurationMinutes <= 0 {
		return 0
	}
	return int(w.Overlap(e.StartTime, time.Duration(e.DurationMinutes)*time.Minute) / time.Minute)
}

func checkinMinutes(h model.Habit, c model.HabitCheckin, opts Options) int {
	if c.DurationMinutes != nil && *c.DurationMinutes > 0 {
		return *c.DurationMinutes
	}
	if h.DefaultDurationMinutes > 0 {
		return h.DefaultDurationMinutes
	}
	return opts.DefaultHabitMinutes
}
