package store

import (
	"context"

	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/source"
)

// Store defines the persistence interface for goals, activity records,
// and aggregated day records.
type Store interface {
	// === Read contracts consumed by the aggregation engine ===

	source.Activity
	source.DayRecordStore

	// === Goals ===

	CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error)
	DeactivateGoal(ctx context.Context, id model.GoalID) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	CompleteTask(ctx context.Context, id string, rating *int) error
	SetTaskGoals(ctx context.Context, taskID string, goalIDs []model.GoalID) error

	// === Time blocks ===

	AddTimeBlockEntry(ctx context.Context, ownerID string, entry model.TimeBlockEntry) (model.TimeBlockEntry, error)
	GetTimeBlock(ctx context.Context, ownerID, date string) (*model.TimeBlock, error)

	// === Habits ===

	CreateHabit(ctx context.Context, habit model.Habit) (model.Habit, error)
	AddCheckin(ctx context.Context, checkin model.HabitCheckin) (model.HabitCheckin, error)
}

var _ Store = (*SQLiteStore)(nil)
