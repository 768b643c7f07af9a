package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/source"
)

const dayColumns = `
	id, user_id, date,
	tasks_goal_aligned_count, block_minutes, habit_minutes, task_minutes,
	total_aligned_minutes, score24, score_percentage, goal_breakdown,
	mindful_task_count, mindful_minutes, average_mindful_rating,
	current_streak, longest_streak, target_minutes_per_day,
	base_current_streak, base_longest_streak,
	version, created_at, updated_at`

// FindDay returns the user's record for a business day, or nil.
func (s *SQLiteStore) FindDay(ctx context.Context, userID, date string) (*model.GoalAlignedDay, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT"+dayColumns+" FROM goal_aligned_days WHERE user_id = ? AND date = ?",
		userID, date)
	return scanOptionalDay(row, fmt.Sprintf("getting day record %s %s", userID, date))
}

// FindLatestDayBefore returns the user's most recent record strictly
// before date, or nil.
func (s *SQLiteStore) FindLatestDayBefore(ctx context.Context, userID, date string) (*model.GoalAlignedDay, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT"+dayColumns+` FROM goal_aligned_days
		WHERE user_id = ? AND date < ?
		ORDER BY date DESC
		LIMIT 1`,
		userID, date)
	return scanOptionalDay(row, fmt.Sprintf("getting day record before %s for %s", date, userID))
}

// FindDayRange returns the user's records with start <= date <= end.
func (s *SQLiteStore) FindDayRange(ctx context.Context, userID, start, end string) ([]model.GoalAlignedDay, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT"+dayColumns+` FROM goal_aligned_days
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying day records %s..%s for %s: %w", start, end, userID, err)
	}
	defer rows.Close()

	days := []model.GoalAlignedDay{}
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// UpsertDay inserts a new record (empty ID) or updates the stored record
// guarded by its version. A lost race in either case returns
// source.ErrVersionConflict.
func (s *SQLiteStore) UpsertDay(ctx context.Context, day *model.GoalAlignedDay) error {
	breakdown := day.GoalBreakdown
	if breakdown == nil {
		breakdown = []model.GoalBreakdown{}
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("marshaling goal_breakdown for %s %s: %w", day.UserID, day.Date, err)
	}
	now := time.Now().UTC()

	if day.ID == "" {
		return s.insertDay(ctx, day, string(breakdownJSON), now)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goal_aligned_days SET
			tasks_goal_aligned_count = ?, block_minutes = ?, habit_minutes = ?, task_minutes = ?,
			total_aligned_minutes = ?, score24 = ?, score_percentage = ?, goal_breakdown = ?,
			mindful_task_count = ?, mindful_minutes = ?, average_mindful_rating = ?,
			current_streak = ?, longest_streak = ?, target_minutes_per_day = ?,
			base_current_streak = ?, base_longest_streak = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		day.TasksGoalAlignedCount, day.BlockMinutes, day.HabitMinutes, day.TaskMinutes,
		day.TotalAlignedMinutes, day.Score24, day.ScorePercentage, string(breakdownJSON),
		day.MindfulTaskCount, day.MindfulMinutes, day.AverageMindfulRating,
		day.CurrentStreak, day.LongestStreak, day.TargetMinutesPerDay,
		day.BaseCurrentStreak, day.BaseLongestStreak,
		now,
		day.ID, day.Version,
	)
	if err != nil {
		return fmt.Errorf("updating day record %s: %w", day.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating day record %s at version %d: %w",
			day.ID, day.Version, source.ErrVersionConflict)
	}

	day.Version++
	day.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) insertDay(
	ctx context.Context,
	day *model.GoalAlignedDay,
	breakdownJSON string,
	now time.Time,
) error {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goal_aligned_days (`+dayColumns+`
		) VALUES (
			?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?,
			?, ?, ?,
			?, ?,
			?, ?, ?
		)`,
		id, day.UserID, day.Date,
		day.TasksGoalAlignedCount, day.BlockMinutes, day.HabitMinutes, day.TaskMinutes,
		day.TotalAlignedMinutes, day.Score24, day.ScorePercentage, breakdownJSON,
		day.MindfulTaskCount, day.MindfulMinutes, day.AverageMindfulRating,
		day.CurrentStreak, day.LongestStreak, day.TargetMinutesPerDay,
		day.BaseCurrentStreak, day.BaseLongestStreak,
		1, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting day record %s %s: %w",
				day.UserID, day.Date, source.ErrVersionConflict)
		}
		return fmt.Errorf("inserting day record %s %s: %w", day.UserID, day.Date, err)
	}

	day.ID = id
	day.Version = 1
	day.CreatedAt = now
	day.UpdatedAt = now
	return nil
}

func scanOptionalDay(row interface{ Scan(dest ...interface{}) error }, op string) (*model.GoalAlignedDay, error) {
	day, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &day, nil
}

// scanDay scans a goal_aligned_days row selected with dayColumns.
func scanDay(rows interface{ Scan(dest ...interface{}) error }) (model.GoalAlignedDay, error) {
	var (
		day           model.GoalAlignedDay
		breakdownJSON string
	)

	err := rows.Scan(
		&day.ID, &day.UserID, &day.Date,
		&day.TasksGoalAlignedCount, &day.BlockMinutes, &day.HabitMinutes, &day.TaskMinutes,
		&day.TotalAlignedMinutes, &day.Score24, &day.ScorePercentage, &breakdownJSON,
		&day.MindfulTaskCount, &day.MindfulMinutes, &day.AverageMindfulRating,
		&day.CurrentStreak, &day.LongestStreak, &day.TargetMinutesPerDay,
		&day.BaseCurrentStreak, &day.BaseLongestStreak,
		&day.Version, &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GoalAlignedDay{}, err
		}
		return model.GoalAlignedDay{}, fmt.Errorf("scanning day record row: %w", err)
	}

	day.GoalBreakdown = []model.GoalBreakdown{}
	if breakdownJSON != "" {
		if err := json.Unmarshal([]byte(breakdownJSON), &day.GoalBreakdown); err != nil {
			return model.GoalAlignedDay{}, fmt.Errorf("unmarshaling goal_breakdown: %w", err)
		}
	}
	return day, nil
}
