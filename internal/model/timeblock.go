package model

import "time"

// TimeBlock is the per-day container for a user's scheduled blocks.
type TimeBlock struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Date      string    `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Entries []TimeBlockEntry `json:"entries,omitempty" db:"-"`
}

// TimeBlockEntry is a sub-interval of a day. Entries without a goal are
// legacy blocks and never contribute to goal-aligned time.
type TimeBlockEntry struct {
	ID              string    `json:"id" db:"id"`
	BlockID         string    `json:"block_id" db:"block_id"`
	Date            string    `json:"date" db:"date"`
	StartTime       time.Time `json:"start_time" db:"start_time"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	GoalID          GoalID    `json:"goal_id,omitempty" db:"goal_id"`

	// TaskID links the entry to a task whose time it already accounts for.
	TaskID string `json:"task_id,omitempty" db:"task_id"`
}
