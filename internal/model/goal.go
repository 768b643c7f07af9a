package model

import (
	"strings"
	"time"
)

// GoalID identifies a goal. The empty GoalID means "not tagged".
type GoalID string

// NormalizeGoalID trims surrounding whitespace from a raw goal reference.
func NormalizeGoalID(raw string) GoalID {
	return GoalID(strings.TrimSpace(raw))
}

// IsZero reports whether the id is unset.
func (id GoalID) IsZero() bool { return id == "" }

func (id GoalID) String() string { return string(id) }

// NormalizeGoalIDs trims each id and drops empties and duplicates while
// keeping the first-seen order.
func NormalizeGoalIDs(raw []string) []GoalID {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[GoalID]bool, len(raw))
	ids := make([]GoalID, 0, len(raw))
	for _, r := range raw {
		id := NormalizeGoalID(r)
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Goal is a long-running objective that activity can be credited to.
type Goal struct {
	ID       GoalID `json:"id" db:"id"`
	OwnerID  string `json:"owner_id" db:"owner_id"`
	Name     string `json:"name" db:"name"`
	ColorTag string `json:"color_tag" db:"color_tag"`

	// TargetMinutesPerDay is optional; nil means the goal has no daily target.
	TargetMinutesPerDay *int `json:"target_minutes_per_day,omitempty" db:"target_minutes_per_day"`

	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GoalRegistry maps goal ids to the user's active goals.
type GoalRegistry map[GoalID]Goal

// NewGoalRegistry indexes the given goals by id, skipping inactive ones.
func NewGoalRegistry(goals []Goal) GoalRegistry {
	reg := make(GoalRegistry, len(goals))
	for _, g := range goals {
		if !g.Active || g.ID.IsZero() {
			continue
		}
		reg[g.ID] = g
	}
	return reg
}
