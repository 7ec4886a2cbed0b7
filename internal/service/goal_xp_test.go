package service

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGoalXpReward(t *testing.T) {
	tests := []struct {
		name            string
		targetValue     int
		startDate       time.Time
		endDate         time.Time
		endDateInFuture bool
		want            int
	}{
		{
			name:        "small goal short span",
			targetValue: 5,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 5),
			want:        75, // 50 * 1.0 * 1.5
		},
		{
			name:        "medium goal short span",
			targetValue: 60,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 5),
			want:        450, // 200 * 1.5 * 1.5
		},
		{
			name:        "mid goal mid span",
			targetValue: 30,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 21),
			want:        144, // 100 * 1.2 * 1.2
		},
		{
			name:            "consistency bonus when end date ahead",
			targetValue:     30,
			startDate:       date(2026, 1, 1),
			endDate:         date(2026, 1, 21),
			endDateInFuture: true,
			want:            187, // 100 * 1.2 * 1.2 * 1.3 = 187.2 rounded
		},
		{
			name:        "large goal long span",
			targetValue: 250,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 3, 15),
			want:        600, // 300 * 2.0 * 1.0
		},
		{
			name:        "end before start counts as urgent",
			targetValue: 5,
			startDate:   date(2026, 1, 10),
			endDate:     date(2026, 1, 1),
			want:        75,
		},
		{
			name:        "same day span counts as urgent",
			targetValue: 5,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 1),
			want:        75,
		},
		{
			name:        "span boundary seven days",
			targetValue: 5,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 8),
			want:        75,
		},
		{
			name:        "span boundary eight days drops urgency",
			targetValue: 5,
			startDate:   date(2026, 1, 1),
			endDate:     date(2026, 1, 9),
			want:        60, // 50 * 1.0 * 1.2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalXpReward(tt.targetValue, tt.startDate, tt.endDate, tt.endDateInFuture)
			if got != tt.want {
				t.Errorf("GoalXpReward(%d, %s, %s, %v) = %d, want %d",
					tt.targetValue, tt.startDate.Format("2006-01-02"), tt.endDate.Format("2006-01-02"),
					tt.endDateInFuture, got, tt.want)
			}
		})
	}
}

func TestGoalXpRewardMonotonicInTarget(t *testing.T) {
	start := date(2026, 1, 1)
	end := date(2026, 2, 15)

	prev := 0
	for _, target := range []int{1, 9, 10, 49, 50, 199, 200, 1000} {
		got := GoalXpReward(target, start, end, false)
		if got < prev {
			t.Fatalf("reward decreased at targetValue=%d: %d < %d", target, got, prev)
		}
		prev = got
	}
}
