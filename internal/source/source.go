// Package source defines the read contracts of the activity collaborators
// consumed by the aggregation engine.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nhle/lifetrack/internal/model"
)

// Name identifies one of the read collaborators.
type Name string

const (
	NameGoals      Name = "goals"
	NameTasks      Name = "tasks"
	NameTimeBlocks Name = "time_blocks"
	NameHabits     Name = "habits"
	NameDayRecords Name = "day_records"
)

// SourceError indicates that a collaborator failed to answer a read.
type SourceError struct {
	Source Name
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Wrap returns err as a SourceError for src, or nil when err is nil.
func Wrap(src Name, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: src, Err: err}
}

// IsSourceError reports whether err (or any error in its chain) is a SourceError.
func IsSourceError(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr)
}

// GoalSource lists the goals that label aggregated output.
type GoalSource interface {
	ListActiveGoals(ctx context.Context, userID string) ([]model.Goal, error)
}

// TaskSource lists tasks completed inside an instant range.
type TaskSource interface {
	ListTasksCompletedInWindow(ctx context.Context, userID string, start, end time.Time) ([]model.Task, error)
}

// TimeBlockSource lists time-block entries overlapping an instant range.
type TimeBlockSource interface {
	ListTimeBlockEntriesOverlapping(ctx context.Context, userID string, start, end time.Time) ([]model.TimeBlockEntry, error)
}

// HabitSource lists active habits tied to a goal, each with all its
// check-ins. Filtering check-ins to a day is the caller's job.
type HabitSource interface {
	ListActiveHabitsWithGoal(ctx context.Context, userID string) ([]model.Habit, error)
}

// Activity bundles the four read collaborators.
type Activity interface {
	GoalSource
	TaskSource
	TimeBlockSource
	HabitSource
}

// ErrVersionConflict is returned by DayRecordStore.UpsertDay when the
// stored record changed since it was read.
var ErrVersionConflict = errors.New("day record version conflict")

// DayRecordStore persists one GoalAlignedDay per user and business day.
// Dates are YYYY-MM-DD business days.
type DayRecordStore interface {
	// FindDay returns nil without error when no record exists.
	FindDay(ctx context.Context, userID, date string) (*model.GoalAlignedDay, error)

	// UpsertDay inserts a record without ID, or updates the stored record
	// whose version equals day.Version. On success day carries the new
	// ID, version and timestamps.
	UpsertDay(ctx context.Context, day *model.GoalAlignedDay) error

	// FindLatestDayBefore returns the most recent record strictly before
	// date, or nil without error.
	FindLatestDayBefore(ctx context.Context, userID, date string) (*model.GoalAlignedDay, error)

	// FindDayRange returns the records with start <= date <= end, ordered by date.
	FindDayRange(ctx context.Context, userID, start, end string) ([]model.GoalAlignedDay, error)
}
