package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/lifetrack/internal/model"
)

// CreateHabit inserts a new habit. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return model.Habit{}, fmt.Errorf("habit name must not be empty")
	}
	if habit.DefaultDurationMinutes < 0 {
		return model.Habit{}, fmt.Errorf("habit default duration must not be negative")
	}
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	habit.GoalID = model.NormalizeGoalID(string(habit.GoalID))
	habit.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (id, owner_id, name, goal_id, default_duration_minutes, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.OwnerID, habit.Name, string(habit.GoalID),
		habit.DefaultDurationMinutes, boolToInt(habit.Active), habit.CreatedAt,
	)
	if err != nil {
		return model.Habit{}, fmt.Errorf("creating habit: %w", err)
	}
	return habit, nil
}

// AddCheckin records a completion event for a habit.
func (s *SQLiteStore) AddCheckin(ctx context.Context, c model.HabitCheckin) (model.HabitCheckin, error) {
	if c.HabitID == "" {
		return model.HabitCheckin{}, fmt.Errorf("checkin habit id must not be empty")
	}
	if c.Date.IsZero() {
		return model.HabitCheckin{}, fmt.Errorf("checkin date must be set")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Date = c.Date.UTC()
	c.GoalID = model.NormalizeGoalID(string(c.GoalID))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_checkins (id, habit_id, goal_id, date, completed, duration_minutes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, string(c.GoalID), c.Date, boolToInt(c.Completed), c.DurationMinutes,
	)
	if err != nil {
		return model.HabitCheckin{}, fmt.Errorf("adding checkin to habit %s: %w", c.HabitID, err)
	}
	return c, nil
}

// ListActiveHabitsWithGoal returns the user's active habits that are tied
// to a goal, directly or through at least one check-in, with all their
// check-ins loaded.
func (s *SQLiteStore) ListActiveHabitsWithGoal(ctx context.Context, userID string) ([]model.Habit, error) {
	var habits []model.Habit
	err := s.db.SelectContext(ctx, &habits, `
		SELECT h.id, h.owner_id, h.name, h.goal_id, h.default_duration_minutes, h.active, h.created_at
		FROM habits h
		WHERE h.owner_id = ? AND h.active = 1
			AND (h.goal_id != '' OR EXISTS (
				SELECT 1 FROM habit_checkins c WHERE c.habit_id = h.id AND c.goal_id != ''))
		ORDER BY h.created_at, h.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying habits for %s: %w", userID, err)
	}
	if len(habits) == 0 {
		return habits, nil
	}

	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	query, args, err := sqlx.In(`
		SELECT id, habit_id, goal_id, date, completed, duration_minutes
		FROM habit_checkins
		WHERE habit_id IN (?)
		ORDER BY date, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("building checkins query: %w", err)
	}

	var checkins []model.HabitCheckin
	if err := s.db.SelectContext(ctx, &checkins, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying checkins: %w", err)
	}

	byHabit := make(map[string][]model.HabitCheckin, len(habits))
	for _, c := range checkins {
		c.GoalID = model.NormalizeGoalID(string(c.GoalID))
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}
	for i := range habits {
		habits[i].GoalID = model.NormalizeGoalID(string(habits[i].GoalID))
		habits[i].Checkins = byHabit[habits[i].ID]
	}
	return habits, nil
}
