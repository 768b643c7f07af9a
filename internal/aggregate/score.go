package aggregate

import (
	"math"
	"sort"

	"github.com/nhle/lifetrack/internal/model"
)

// DayScore is the scored form of a Distribution.
type DayScore struct {
	TotalAlignedMinutes int
	Score24             float64
	ScorePercentage     float64
	GoalBreakdown       []model.GoalBreakdown
}

// Score caps the day's aligned time at 24 hours and assembles the goal
// breakdown. Goals missing from the registry are dropped.
func Score(d Distribution, goals model.GoalRegistry) DayScore {
	raw := d.RawMinutes()
	total := min(raw, model.MinutesPerDay)

	s := DayScore{
		TotalAlignedMinutes: total,
		Score24:             math.Min(24, round1(float64(total)/60)),
	}
	if total > 0 {
		s.ScorePercentage = round1(s.Score24 / 24 * 100)
	}
	s.GoalBreakdown = breakdown(d, goals, raw, total)
	return s
}

// breakdownEntry pairs an output entry with its exact minutes.
type breakdownEntry struct {
	out   model.GoalBreakdown
	exact float64
}

func breakdown(d Distribution, goals model.GoalRegistry, raw, total int) []model.GoalBreakdown {
	scale := 1.0
	if raw > total && raw > 0 {
		scale = float64(total) / float64(raw)
	}

	entries := make([]breakdownEntry, 0, len(d.PerGoalMinutes))
	for id, minutes := range d.PerGoalMinutes {
		g, ok := goals[id]
		if !ok {
			continue
		}
		exact := minutes * scale
		out := model.GoalBreakdown{
			GoalID:              id,
			Name:                g.Name,
			ColorTag:            g.ColorTag,
			Minutes:             roundInt(exact),
			MindfulMinutes:      roundInt(d.PerGoalMindfulMinutes[id] * scale),
			TargetMinutesPerDay: g.TargetMinutesPerDay,
		}
		entries = append(entries, breakdownEntry{out: out, exact: exact})
	}

	trimRoundingExcess(entries, total)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].out.Minutes != entries[j].out.Minutes {
			return entries[i].out.Minutes > entries[j].out.Minutes
		}
		return entries[i].out.GoalID < entries[j].out.GoalID
	})

	result := make([]model.GoalBreakdown, len(entries))
	for i, e := range entries {
		if total > 0 {
			e.out.PercentageOfDay = roundInt(float64(e.out.Minutes) / float64(total) * 100)
		}
		result[i] = e.out
	}
	return result
}

// trimRoundingExcess lowers rounded-up entries, smallest fraction first,
// until the breakdown no longer exceeds total.
func trimRoundingExcess(entries []breakdownEntry, total int) {
	sum := 0
	for _, e := range entries {
		sum += e.out.Minutes
	}
	if sum <= total {
		return
	}

	var up []int
	for i, e := range entries {
		if float64(e.out.Minutes) > e.exact {
			up = append(up, i)
		}
	}
	sort.Slice(up, func(a, b int) bool {
		ea, eb := entries[up[a]], entries[up[b]]
		fa, fb := ea.exact-math.Floor(ea.exact), eb.exact-math.Floor(eb.exact)
		if fa != fb {
			return fa < fb
		}
		return ea.out.GoalID > eb.out.GoalID
	})

	for _, i := range up {
		if sum <= total {
			break
		}
		entries[i].out.Minutes--
		sum--
	}
}
