package testutil

import (
	"testing"
	"time"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
)

// Day parses a YYYY-MM-DD business day or fails the test.
func Day(t *testing.T, date string) time.Time {
	t.Helper()

	d, err := businessday.ParseDate(date)
	if err != nil {
		t.Fatalf("parsing day %q: %v", date, err)
	}
	return d
}

// At returns the instant hh:mm business time on date.
func At(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	return Day(t, date).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).UTC()
}

// Goal returns an active goal.
func Goal(id, name string) model.Goal {
	return model.Goal{
		ID:       model.GoalID(id),
		OwnerID:  "u1",
		Name:     name,
		ColorTag: "#5B9BD5",
		Active:   true,
	}
}

// CompletedTask returns a task completed at the given instant.
func CompletedTask(id string, completedAt time.Time, minutes int, goals ...string) model.Task {
	ids := make([]model.GoalID, len(goals))
	for i, g := range goals {
		ids[i] = model.GoalID(g)
	}
	return model.Task{
		ID:              id,
		OwnerID:         "u1",
		Title:           "task " + id,
		Status:          model.TaskStatusComplete,
		CompletedAt:     &completedAt,
		DurationMinutes: minutes,
		GoalIDs:         ids,
	}
}

// Checkin returns a completed check-in with an explicit duration.
func Checkin(habitID, goalID string, date time.Time, minutes int) model.HabitCheckin {
	return model.HabitCheckin{
		HabitID:         habitID,
		GoalID:          model.GoalID(goalID),
		Date:            date,
		Completed:       true,
		DurationMinutes: IntPtr(minutes),
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
