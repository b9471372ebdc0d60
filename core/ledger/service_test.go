package ledger

import "testing"

func TestTotalPoints(t *testing.T) {
	tests := []struct {
		name   string
		events []PointEvent
		want   int
	}{
		{name: "empty", want: 0},
		{
			name: "mixed reasons",
			events: []PointEvent{
				{Points: 50, Reason: ReasonQuizPassed, Timestamp: 3},
				{Points: 100, Reason: ReasonCourseCompleted, Timestamp: 1},
				{Points: 25, Reason: ReasonGoalCompleted, Timestamp: 2},
			},
			want: 175,
		},
		{
			name: "order independent",
			events: []PointEvent{
				{Points: 25, Reason: ReasonGoalCompleted, Timestamp: 2},
				{Points: 100, Reason: ReasonCourseCompleted, Timestamp: 1},
				{Points: 50, Reason: ReasonQuizPassed, Timestamp: 3},
			},
			want: 175,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPoints(tt.events); got != tt.want {
				t.Errorf("TotalPoints() = %d, want %d", got, tt.want)
			}
		})
	}
}
