package model

import "time"

// Task status constants.
const (
	TaskStatusOpen     = "open"
	TaskStatusComplete = "complete"
)

// Mindful rating bounds.
const (
	MindfulRatingMin = 1
	MindfulRatingMax = 5
)

// Task is a unit of work the user completes. It counts towards goal-aligned
// time only when it carries at least one goal and was completed inside the
// day window.
type Task struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Status      string     `json:"status" db:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// DurationMinutes of 0 means the duration was never recorded.
	DurationMinutes int `json:"duration_minutes" db:"duration_minutes"`

	// MindfulRating is 1..5 or nil when the user did not rate the task.
	MindfulRating *int `json:"mindful_rating,omitempty" db:"mindful_rating"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// GoalIDs is populated from the task_goals join table.
	GoalIDs []GoalID `json:"goal_ids,omitempty" db:"-"`
}

// CompletedWithin reports whether the task was completed inside [start, end].
func (t Task) CompletedWithin(start, end time.Time) bool {
	if t.CompletedAt == nil {
		return false
	}
	return !t.CompletedAt.Before(start) && !t.CompletedAt.After(end)
}
