package aggregate

import (
	"context"

	"github.com/nhle/lifetrack/internal/businessday"
	"github.com/nhle/lifetrack/internal/model"
	"github.com/nhle/lifetrack/internal/source"
)

// WeeklySummary reads the persisted day records of the Sunday-start week
// containing date. It never re-runs aggregation; days without a record are
// left out.
func (e *Engine) WeeklySummary(ctx context.Context, userID, date string) (*model.WeekSummary, error) {
	day, err := businessday.ParseDate(date)
	if err != nil {
		return nil, err
	}
	start, end := businessday.WeekContaining(day)

	records, err := e.days.FindDayRange(ctx, userID, businessday.Format(start), businessday.Format(end))
	if err != nil {
		return nil, unavailable(source.NameDayRecords, err)
	}

	summary := Summarize(records)
	summary.UserID = userID
	summary.WeekStart = businessday.Format(start)
	summary.WeekEnd = businessday.Format(end)
	return &summary, nil
}

// Summarize rolls day records up into week totals. Records are expected in
// date order; the earliest day wins ties for BestDay.
func Summarize(records []model.GoalAlignedDay) model.WeekSummary {
	s := model.WeekSummary{Days: make([]model.WeekDay, 0, len(records))}

	var scoreSum float64
	best := -1.0
	for _, r := range records {
		s.Days = append(s.Days, model.WeekDay{
			Date:                r.Date,
			Score24:             r.Score24,
			ScorePercentage:     r.ScorePercentage,
			TotalAlignedMinutes: r.TotalAlignedMinutes,
		})
		s.TotalAlignedMinutes += r.TotalAlignedMinutes
		scoreSum += r.Score24
		if r.Score24 > best {
			best = r.Score24
			s.BestDay = r.Date
		}
	}
	if len(records) > 0 {
		s.AverageScore24 = round1(scoreSum / float64(len(records)))
	}
	return s
}
