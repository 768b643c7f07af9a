package aggregate

// MinActiveScore24 is the score below which a day counts as inactive.
const MinActiveScore24 = 1.0

// StreakState is the streak portion of a day record.
type StreakState struct {
	Current             int
	Longest             int
	TargetMinutesPerDay int
}

// ApplyStreak advances base by one day scored score24:
//   - below one hour the current streak resets;
//   - at or above the target it grows by one;
//   - in between it is carried over unchanged.
//
// Longest never decreases.
func ApplyStreak(base StreakState, score24 float64) StreakState {
	next := base
	targetHours := float64(base.TargetMinutesPerDay) / 60

	switch {
	case score24 < MinActiveScore24:
		next.Current = 0
	case score24 >= targetHours:
		next.Current++
	}
	next.Longest = max(base.Longest, next.Current)
	return next
}
