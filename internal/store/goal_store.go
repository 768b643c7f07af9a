package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/lifetrack/internal/model"
)

// CreateGoal inserts a new goal and returns it with ID and timestamps set.
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error) {
	if strings.TrimSpace(goal.Name) == "" {
		return model.Goal{}, fmt.Errorf("goal name must not be empty")
	}
	goal.ID = model.NormalizeGoalID(string(goal.ID))
	if goal.ID.IsZero() {
		goal.ID = model.GoalID(uuid.New().String())
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, owner_id, name, color_tag, target_minutes_per_day, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(goal.ID), goal.OwnerID, goal.Name, goal.ColorTag, goal.TargetMinutesPerDay,
		boolToInt(goal.Active), goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return model.Goal{}, fmt.Errorf("creating goal: %w", err)
	}
	return goal, nil
}

// DeactivateGoal removes a goal from the active registry. Activity that
// still references it is no longer shown in breakdowns.
func (s *SQLiteStore) DeactivateGoal(ctx context.Context, id model.GoalID) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE goals SET active = 0, updated_at = ? WHERE id = ?",
		time.Now().UTC(), string(id))
	if err != nil {
		return fmt.Errorf("deactivating goal %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// ListActiveGoals returns the user's active goals ordered by name.
func (s *SQLiteStore) ListActiveGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	var goals []model.Goal
	err := s.db.SelectContext(ctx, &goals, `
		SELECT id, owner_id, name, color_tag, target_minutes_per_day, active, created_at, updated_at
		FROM goals
		WHERE owner_id = ? AND active = 1
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying active goals for %s: %w", userID, err)
	}
	return goals, nil
}
