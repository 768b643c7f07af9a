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

// CreateTask inserts a task together with its goal tags. Generates a UUID
// if ID is empty.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return model.Task{}, fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = model.TaskStatusOpen
	}
	if task.CompletedAt != nil {
		task.Status = model.TaskStatusComplete
		completed := task.CompletedAt.UTC()
		task.CompletedAt = &completed
	}
	task.GoalIDs = normalizeGoals(task.GoalIDs)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (
			id, owner_id, title, status, completed_at,
			duration_minutes, mindful_rating, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, task.Status, task.CompletedAt,
		task.DurationMinutes, task.MindfulRating, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}
	if err := insertTaskGoals(ctx, tx, task.ID, task.GoalIDs); err != nil {
		return model.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Task{}, fmt.Errorf("committing task %s: %w", task.ID, err)
	}
	return task, nil
}

// CompleteTask marks a task complete now, optionally recording a mindful rating.
func (s *SQLiteStore) CompleteTask(ctx context.Context, id string, rating *int) error {
	if rating != nil && (*rating < model.MindfulRatingMin || *rating > model.MindfulRatingMax) {
		return fmt.Errorf("mindful rating must be between %d and %d, got %d",
			model.MindfulRatingMin, model.MindfulRatingMax, *rating)
	}
	now := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			status = ?, completed_at = ?, mindful_rating = COALESCE(?, mindful_rating), updated_at = ?
		WHERE id = ?`,
		model.TaskStatusComplete, now, rating, now, id,
	)
	if err != nil {
		return fmt.Errorf("completing task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// SetTaskGoals replaces all goal associations for a task.
func (s *SQLiteStore) SetTaskGoals(ctx context.Context, taskID string, goalIDs []model.GoalID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove existing associations.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM task_goals WHERE task_id = ?", taskID); err != nil {
		return fmt.Errorf("clearing task goals: %w", err)
	}
	if err := insertTaskGoals(ctx, tx, taskID, normalizeGoals(goalIDs)); err != nil {
		return err
	}

	return tx.Commit()
}

// ListTasksCompletedInWindow returns the user's tasks completed inside
// [start, end], each with its goal tags.
func (s *SQLiteStore) ListTasksCompletedInWindow(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, owner_id, title, status, completed_at,
			duration_minutes, mindful_rating, created_at, updated_at
		FROM tasks
		WHERE owner_id = ? AND status = ?
			AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at <= ?
		ORDER BY completed_at`,
		userID, model.TaskStatusComplete, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying tasks completed for %s: %w", userID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadTaskGoals(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadTaskGoals fills GoalIDs for all tasks with a single query.
func (s *SQLiteStore) loadTaskGoals(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	query, args, err := sqlx.In(
		"SELECT task_id, goal_id FROM task_goals WHERE task_id IN (?) ORDER BY task_id, goal_id", ids)
	if err != nil {
		return fmt.Errorf("building task goals query: %w", err)
	}

	var links []struct {
		TaskID string `db:"task_id"`
		GoalID string `db:"goal_id"`
	}
	if err := s.db.SelectContext(ctx, &links, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("querying task goals: %w", err)
	}

	byTask := make(map[string][]string, len(tasks))
	for _, l := range links {
		byTask[l.TaskID] = append(byTask[l.TaskID], l.GoalID)
	}
	for i := range tasks {
		tasks[i].GoalIDs = model.NormalizeGoalIDs(byTask[tasks[i].ID])
	}
	return nil
}

func insertTaskGoals(ctx context.Context, tx *sqlx.Tx, taskID string, goalIDs []model.GoalID) error {
	for _, g := range goalIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO task_goals (task_id, goal_id) VALUES (?, ?)",
			taskID, string(g)); err != nil {
			return fmt.Errorf("setting goal %s on task %s: %w", g, taskID, err)
		}
	}
	return nil
}

func normalizeGoals(ids []model.GoalID) []model.GoalID {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}
	return model.NormalizeGoalIDs(raw)
}

// scanTask scans a task row from sqlx.Rows.
func scanTask(rows interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task        model.Task
		completedAt *time.Time
		rating      *int
	)

	err := rows.Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.Status, &completedAt,
		&task.DurationMinutes, &rating, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.CompletedAt = completedAt
	task.MindfulRating = rating
	return task, nil
}
