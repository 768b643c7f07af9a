package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
)

// maxEntryMinutes bounds how far back an overlapping entry can start.
const maxEntryMinutes = model.MinutesPerDay

// AddTimeBlockEntry appends an entry to the owner's time block for the
// entry's business day, creating the block if needed.
func (s *SQLiteStore) AddTimeBlockEntry(
	ctx context.Context,
	ownerID string,
	entry model.TimeBlockEntry,
) (model.TimeBlockEntry, error) {
	if entry.StartTime.IsZero() {
		return model.TimeBlockEntry{}, fmt.Errorf("time block entry start time must be set")
	}
	if entry.DurationMinutes < 0 || entry.DurationMinutes > maxEntryMinutes {
		return model.TimeBlockEntry{}, fmt.Errorf("time block entry duration %d out of range", entry.DurationMinutes)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.StartTime = entry.StartTime.UTC()
	entry.Date = businessday.Format(entry.StartTime)
	entry.GoalID = model.NormalizeGoalID(string(entry.GoalID))

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.TimeBlockEntry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO time_blocks (id, owner_id, date, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id, date) DO NOTHING`,
		uuid.New().String(), ownerID, entry.Date, time.Now().UTC(),
	)
	if err != nil {
		return model.TimeBlockEntry{}, fmt.Errorf("creating time block %s: %w", entry.Date, err)
	}
	if err := tx.GetContext(ctx, &entry.BlockID,
		"SELECT id FROM time_blocks WHERE owner_id = ? AND date = ?",
		ownerID, entry.Date); err != nil {
		return model.TimeBlockEntry{}, fmt.Errorf("loading time block %s: %w", entry.Date, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO time_block_entries (id, block_id, date, start_time, duration_minutes, goal_id, task_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.BlockID, entry.Date, entry.StartTime,
		entry.DurationMinutes, string(entry.GoalID), entry.TaskID,
	)
	if err != nil {
		return model.TimeBlockEntry{}, fmt.Errorf("adding time block entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.TimeBlockEntry{}, fmt.Errorf("committing time block entry: %w", err)
	}
	return entry, nil
}

// GetTimeBlock returns the owner's block for a business day with its
// entries, or nil when the day has none.
func (s *SQLiteStore) GetTimeBlock(ctx context.Context, ownerID, date string) (*model.TimeBlock, error) {
	var block model.TimeBlock
	err := s.db.GetContext(ctx, &block,
		"SELECT id, owner_id, date, created_at FROM time_blocks WHERE owner_id = ? AND date = ?",
		ownerID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting time block %s: %w", date, err)
	}

	err = s.db.SelectContext(ctx, &block.Entries, `
		SELECT id, block_id, date, start_time, duration_minutes, goal_id, task_id
		FROM time_block_entries
		WHERE block_id = ?
		ORDER BY start_time`, block.ID)
	if err != nil {
		return nil, fmt.Errorf("querying entries of time block %s: %w", block.ID, err)
	}
	return &block, nil
}

// ListTimeBlockEntriesOverlapping returns the user's entries whose interval
// [start_time, start_time+duration) intersects [start, end].
func (s *SQLiteStore) ListTimeBlockEntriesOverlapping(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]model.TimeBlockEntry, error) {
	var candidates []model.TimeBlockEntry
	err := s.db.SelectContext(ctx, &candidates, `
		SELECT e.id, e.block_id, e.date, e.start_time, e.duration_minutes, e.goal_id, e.task_id
		FROM time_block_entries e
		INNER JOIN time_blocks b ON b.id = e.block_id
		WHERE b.owner_id = ? AND e.start_time >= ? AND e.start_time <= ?
		ORDER BY e.start_time`,
		userID, start.UTC().Add(-maxEntryMinutes*time.Minute), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying time block entries for %s: %w", userID, err)
	}

	entries := make([]model.TimeBlockEntry, 0, len(candidates))
	for _, e := range candidates {
		entryEnd := e.StartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
		if e.StartTime.After(end) || !entryEnd.After(start) {
			continue
		}
		e.GoalID = model.NormalizeGoalID(string(e.GoalID))
		entries = append(entries, e)
	}
	return entries, nil
}
