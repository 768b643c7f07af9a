package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyStreak(t *testing.T) {
	tests := []struct {
		name    string
		base    StreakState
		score24 float64
		want    StreakState
	}{
		{
			name:    "inactive day resets current but keeps longest",
			base:    StreakState{Current: 5, Longest: 7, TargetMinutesPerDay: 480},
			score24: 0.5,
			want:    StreakState{Current: 0, Longest: 7, TargetMinutesPerDay: 480},
		},
		{
			name:    "meeting the target extends both",
			base:    StreakState{Current: 5, Longest: 5, TargetMinutesPerDay: 480},
			score24: 9,
			want:    StreakState{Current: 6, Longest: 6, TargetMinutesPerDay: 480},
		},
		{
			name:    "exactly on target counts",
			base:    StreakState{Current: 2, Longest: 10, TargetMinutesPerDay: 480},
			score24: 8,
			want:    StreakState{Current: 3, Longest: 10, TargetMinutesPerDay: 480},
		},
		{
			name:    "partial day carries the streak",
			base:    StreakState{Current: 4, Longest: 4, TargetMinutesPerDay: 480},
			score24: 3.5,
			want:    StreakState{Current: 4, Longest: 4, TargetMinutesPerDay: 480},
		},
		{
			name:    "just under one hour is inactive",
			base:    StreakState{Current: 3, Longest: 3, TargetMinutesPerDay: 30},
			score24: 0.9,
			want:    StreakState{Current: 0, Longest: 3, TargetMinutesPerDay: 30},
		},
		{
			name:    "first ever day",
			base:    StreakState{TargetMinutesPerDay: 60},
			score24: 1,
			want:    StreakState{Current: 1, Longest: 1, TargetMinutesPerDay: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyStreak(tt.base, tt.score24))
		})
	}
}

func TestApplyStreakLongestNeverDecreases(t *testing.T) {
	state := StreakState{TargetMinutesPerDay: 120}
	longest := 0
	for _, score := range []float64{3, 2, 0, 5, 1.5, 2, 2, 0.2, 4} {
		state = ApplyStreak(state, score)
		assert.GreaterOrEqual(t, state.Longest, longest)
		assert.GreaterOrEqual(t, state.Longest, state.Current)
		longest = state.Longest
	}
	assert.Equal(t, 3, longest)
}
