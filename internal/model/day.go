package model

import "time"

// Day-level constants.
const (
	MinutesPerDay              = 1440
	DefaultTargetMinutesPerDay = 480
)

// GoalBreakdown is the share of a day's aligned time credited to one goal.
type GoalBreakdown struct {
	GoalID          GoalID `json:"goal_id"`
	Name            string `json:"name"`
	ColorTag        string `json:"color_tag"`
	Minutes         int    `json:"minutes"`
	PercentageOfDay int    `json:"percentage_of_day"`
	MindfulMinutes  int    `json:"mindful_minutes"`

	// TargetMinutesPerDay mirrors the goal's own target, if it has one.
	TargetMinutesPerDay *int `json:"target_minutes_per_day,omitempty"`
}

// GoalAlignedDay is the persisted aggregate for one user and one business day.
type GoalAlignedDay struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Date is the business day in YYYY-MM-DD form.
	Date string `json:"date"`

	TasksGoalAlignedCount int `json:"tasks_goal_aligned_count"`
	BlockMinutes          int `json:"block_minutes"`
	HabitMinutes          int `json:"habit_minutes"`
	TaskMinutes           int `json:"task_minutes"`
	TotalAlignedMinutes   int `json:"total_aligned_minutes"`

	Score24         float64         `json:"score24"`
	ScorePercentage float64         `json:"score_percentage"`
	GoalBreakdown   []GoalBreakdown `json:"goal_breakdown"`

	MindfulTaskCount     int     `json:"mindful_task_count"`
	MindfulMinutes       int     `json:"mindful_minutes"`
	AverageMindfulRating float64 `json:"average_mindful_rating"`

	CurrentStreak       int `json:"current_streak"`
	LongestStreak       int `json:"longest_streak"`
	TargetMinutesPerDay int `json:"target_minutes_per_day"`

	// BaseCurrentStreak and BaseLongestStreak are the values inherited from
	// the latest earlier record. The day's streak transition is always
	// applied to them, never to CurrentStreak itself.
	BaseCurrentStreak int `json:"base_current_streak"`
	BaseLongestStreak int `json:"base_longest_streak"`

	// Version is bumped by every successful upsert.
	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGoalAlignedDay returns a zeroed record for a user and date.
func NewGoalAlignedDay(userID, date string) GoalAlignedDay {
	return GoalAlignedDay{
		UserID:              userID,
		Date:                date,
		GoalBreakdown:       []GoalBreakdown{},
		TargetMinutesPerDay: DefaultTargetMinutesPerDay,
	}
}

// MindfulRatingKnown reports whether AverageMindfulRating reflects at least
// one task. A zero average means there was nothing to rate.
func (d GoalAlignedDay) MindfulRatingKnown() bool {
	return d.AverageMindfulRating > 0
}

// TargetHours returns the daily target expressed in hours.
func (d GoalAlignedDay) TargetHours() float64 {
	return float64(d.TargetMinutesPerDay) / 60
}

// WeekDay is one entry of a weekly summary.
type WeekDay struct {
	Date                string  `json:"date"`
	Score24             float64 `json:"score24"`
	ScorePercentage     float64 `json:"score_percentage"`
	TotalAlignedMinutes int     `json:"total_aligned_minutes"`
}

// WeekSummary is a read-time rollup of the persisted day records of a week.
// Days without a record are absent from Days.
type WeekSummary struct {
	UserID    string    `json:"user_id"`
	WeekStart string    `json:"week_start"`
	WeekEnd   string    `json:"week_end"`
	Days      []WeekDay `json:"days"`

	TotalAlignedMinutes int     `json:"total_aligned_minutes"`
	AverageScore24      float64 `json:"average_score24"`

	// BestDay is the date with the highest score, empty when Days is empty.
	BestDay string `json:"best_day,omitempty"`
}
