package aggregate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/lifetrack/internal/aggregate"
	"github.com/nhle/lifetrack/internal/model"
)

func TestWeeklySummary(t *testing.T) {
	ctx := context.Background()
	e, s := newEngine(t)

	scored := func(date string, minutes int, score float64) {
		day := model.NewGoalAlignedDay(user, date)
		day.TotalAlignedMinutes = minutes
		day.Score24 = score
		day.ScorePercentage = float64(minutes) / model.MinutesPerDay * 100
		require.NoError(t, s.UpsertDay(ctx, &day))
	}
	scored("2024-03-09", 600, 10) // previous Saturday
	scored("2024-03-10", 120, 2)  // Sunday
	scored("2024-03-12", 300, 5)
	scored("2024-03-16", 300, 5) // Saturday
	scored("2024-03-17", 900, 15)

	sum, err := e.WeeklySummary(ctx, user, "2024-03-13")
	require.NoError(t, err)

	assert.Equal(t, user, sum.UserID)
	assert.Equal(t, "2024-03-10", sum.WeekStart)
	assert.Equal(t, "2024-03-16", sum.WeekEnd)
	require.Len(t, sum.Days, 3)
	assert.Equal(t, "2024-03-10", sum.Days[0].Date)
	assert.Equal(t, "2024-03-16", sum.Days[2].Date)
	assert.Equal(t, 720, sum.TotalAlignedMinutes)
	assert.Equal(t, 4.0, sum.AverageScore24)
	assert.Equal(t, "2024-03-12", sum.BestDay, "earliest day wins a tie")
}

func TestWeeklySummaryDoesNotAggregate(t *testing.T) {
	ctx := context.Background()
	e, s := newEngine(t)
	seedGoals(t, s, "G1")
	addBlock(t, s, "2024-03-11", 8, 120, "G1", "")

	sum, err := e.WeeklySummary(ctx, user, "2024-03-11")
	require.NoError(t, err)
	assert.Empty(t, sum.Days)
	assert.Equal(t, 0.0, sum.AverageScore24)
	assert.Empty(t, sum.BestDay)

	day, err := s.FindDay(ctx, user, "2024-03-11")
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestWeeklySummaryRejectsInvalidDate(t *testing.T) {
	e, _ := newEngine(t)
	_, err := e.WeeklySummary(context.Background(), user, "2024-13-01")
	assert.ErrorIs(t, err, aggregate.ErrInvalidDate)
}

func TestSummarize(t *testing.T) {
	empty := aggregate.Summarize(nil)
	assert.NotNil(t, empty.Days)
	assert.Zero(t, empty.TotalAlignedMinutes)

	records := []model.GoalAlignedDay{
		{Date: "2024-03-10", Score24: 1.2, TotalAlignedMinutes: 72},
		{Date: "2024-03-11", Score24: 0, TotalAlignedMinutes: 0},
		{Date: "2024-03-12", Score24: 2.1, TotalAlignedMinutes: 126},
	}
	s := aggregate.Summarize(records)

	assert.Equal(t, 198, s.TotalAlignedMinutes)
	assert.Equal(t, 1.1, s.AverageScore24)
	assert.Equal(t, "2024-03-12", s.BestDay)
	assert.Len(t, s.Days, 3)
}
