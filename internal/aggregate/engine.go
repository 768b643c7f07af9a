package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log"
	gosync "sync"
	"time"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/source"
)

// DaySummary is returned by ComputeToday.
type DaySummary struct {
	model.GoalAlignedDay

	// WindowStart and WindowEnd are the UTC instants the day was queried with.
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// Engine runs the day aggregation pipeline: fetch, distribute, score,
// advance the streak, persist.
type Engine struct {
	activity      source.Activity
	days          source.DayRecordStore
	opts          Options
	defaultTarget int
	locks         *keyedMutex
}

// NewEngine creates an Engine over the given collaborators.
func NewEngine(
	activity source.Activity,
	days source.DayRecordStore,
	cfg model.AggregationConfig,
) *Engine {
	target := cfg.DefaultTargetMinutes
	if target <= 0 {
		target = model.DefaultTargetMinutesPerDay
	}
	return &Engine{
		activity:      activity,
		days:          days,
		opts:          OptionsFromConfig(cfg),
		defaultTarget: target,
		locks:         newKeyedMutex(),
	}
}

// ComputeToday aggregates the given business day (YYYY-MM-DD) for a user,
// persists the day record and returns it.
func (e *Engine) ComputeToday(ctx context.Context, userID, date string) (*DaySummary, error) {
	day, err := businessday.ParseDate(date)
	if err != nil {
		return nil, err
	}

	unlock := e.locks.Lock(userID + "|" + businessday.Format(day))
	defer unlock()

	return e.recompute(ctx, userID, day, nil)
}

// SetTarget changes the user's daily target starting at date and
// recomputes that day so its streak reflects the new target. Later days
// inherit the target from it.
func (e *Engine) SetTarget(ctx context.Context, userID, date string, minutes int) (*DaySummary, error) {
	day, err := businessday.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if minutes <= 0 || minutes > model.MinutesPerDay {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidTarget, minutes)
	}

	unlock := e.locks.Lock(userID + "|" + businessday.Format(day))
	defer unlock()

	return e.recompute(ctx, userID, day, &minutes)
}

// recompute runs the pipeline for one day. The caller holds the day's lock.
func (e *Engine) recompute(
	ctx context.Context,
	userID string,
	day time.Time,
	targetOverride *int,
) (*DaySummary, error) {
	date := businessday.Format(day)
	window := businessday.WindowFor(day)

	activity, goals, err := e.fetch(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	existing, baseline, err := e.baseline(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if targetOverride != nil {
		baseline.TargetMinutesPerDay = *targetOverride
	}

	rec := ComputeDay(DayInputs{
		UserID:   userID,
		Date:     date,
		Window:   window,
		Goals:    goals,
		Activity: activity,
		Baseline: baseline,
		Options:  e.opts,
	})
	if existing != nil {
		rec.ID = existing.ID
		rec.Version = existing.Version
		rec.CreatedAt = existing.CreatedAt
	}

	if err := e.days.UpsertDay(ctx, &rec); err != nil {
		if errors.Is(err, source.ErrVersionConflict) {
			log.Printf("day record %s/%s changed concurrently: %v", userID, date, err)
			return nil, fmt.Errorf("%w: %s %s", ErrPersistConflict, userID, date)
		}
		return nil, fmt.Errorf("persisting day record %s %s: %w", userID, date, err)
	}

	return &DaySummary{
		GoalAlignedDay: rec,
		WindowStart:    window.Start,
		WindowEnd:      window.End,
	}, nil
}

// fetch reads the goal registry and the three activity streams. Any
// failure aborts the aggregation.
func (e *Engine) fetch(
	ctx context.Context,
	userID string,
	w businessday.Window,
) (Activity, []model.Goal, error) {
	var a Activity

	goals, err := e.activity.ListActiveGoals(ctx, userID)
	if err != nil {
		return a, nil, unavailable(source.NameGoals, err)
	}
	if a.Tasks, err = e.activity.ListTasksCompletedInWindow(ctx, userID, w.Start, w.End); err != nil {
		return a, nil, unavailable(source.NameTasks, err)
	}
	if a.Entries, err = e.activity.ListTimeBlockEntriesOverlapping(ctx, userID, w.Start, w.End); err != nil {
		return a, nil, unavailable(source.NameTimeBlocks, err)
	}
	if a.Habits, err = e.activity.ListActiveHabitsWithGoal(ctx, userID); err != nil {
		return a, nil, unavailable(source.NameHabits, err)
	}
	return a, goals, nil
}

// baseline loads the existing record for the day and the streak state the
// day's transition starts from. An existing record keeps the baseline it
// was created with, so recomputation never applies the transition twice.
func (e *Engine) baseline(
	ctx context.Context,
	userID, date string,
) (*model.GoalAlignedDay, StreakState, error) {
	existing, err := e.days.FindDay(ctx, userID, date)
	if err != nil {
		return nil, StreakState{}, unavailable(source.NameDayRecords, err)
	}
	if existing != nil {
		return existing, StreakState{
			Current:             existing.BaseCurrentStreak,
			Longest:             existing.BaseLongestStreak,
			TargetMinutesPerDay: existing.TargetMinutesPerDay,
		}, nil
	}

	prev, err := e.days.FindLatestDayBefore(ctx, userID, date)
	if err != nil {
		return nil, StreakState{}, unavailable(source.NameDayRecords, err)
	}
	if prev == nil {
		return nil, StreakState{TargetMinutesPerDay: e.defaultTarget}, nil
	}
	return nil, StreakState{
		Current:             prev.CurrentStreak,
		Longest:             prev.LongestStreak,
		TargetMinutesPerDay: prev.TargetMinutesPerDay,
	}, nil
}

func unavailable(src source.Name, err error) error {
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, source.Wrap(src, err))
}

// keyedMutex serializes work per key. Entries are dropped once unused.
type keyedMutex struct {
	mu    gosync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   gosync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock acquires the lock for key and returns its release func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
