package model

import "time"

// Habit is a recurring activity with its completion events embedded.
type Habit struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"owner_id" db:"owner_id"`
	Name    string `json:"name" db:"name"`
	GoalID  GoalID `json:"goal_id,omitempty" db:"goal_id"`

	// DefaultDurationMinutes is used for check-ins that omit a duration.
	// Zero means the habit has no default of its own.
	DefaultDurationMinutes int `json:"default_duration_minutes" db:"default_duration_minutes"`

	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Checkins []HabitCheckin `json:"checkins,omitempty" db:"-"`
}

// HabitCheckin records a single completion event of a habit.
type HabitCheckin struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	GoalID    GoalID    `json:"goal_id,omitempty" db:"goal_id"`
	Date      time.Time `json:"date" db:"date"`
	Completed bool      `json:"completed" db:"completed"`

	// DurationMinutes is optional; nil falls back to the habit default.
	DurationMinutes *int `json:"duration_minutes,omitempty" db:"duration_minutes"`
}

// EffectiveGoal returns the check-in's goal, inheriting the habit's goal
// when the check-in has none.
func (h Habit) EffectiveGoal(c HabitCheckin) GoalID {
	if !c.GoalID.IsZero() {
		return c.GoalID
	}
	return h.GoalID
}
