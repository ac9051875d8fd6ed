package deadline

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	today := time.Date(2024, 6, 1, 18, 30, 0, 0, time.Local)

	tests := []struct {
		due     string
		text    string
		urgency Urgency
	}{
		{"2024-06-01", "D-Day", Urgent},
		{"2024-06-02", "D-1", Urgent},
		{"2024-06-03", "D-2", Warning},
		{"2024-06-04", "D-3", Warning},
		{"2024-06-05", "D-4", Normal},
		{"2024-07-01", "D-30", Normal},
		{"2024-05-31", "D+1", Past},
		{"2023-06-01", "D+366", Past},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			got := Classify(tt.due, today)
			if got == nil {
				t.Fatal("expected a label")
			}
			if got.Text != tt.text || got.Urgency != tt.urgency {
				t.Errorf("Classify(%s) = {%s %s}, want {%s %s}", tt.due, got.Text, got.Urgency, tt.text, tt.urgency)
			}
		})
	}
}

func TestClassifyWithoutDueDate(t *testing.T) {
	if got := Classify("", time.Now()); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if got := Classify("not-a-date", time.Now()); got != nil {
		t.Fatalf("expected nil for unreadable date, got %+v", got)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local)
	b := time.Date(2024, 3, 11, 0, 1, 0, 0, time.Local)
	if got := DaysBetween(a, b); got != 2 {
		t.Fatalf("DaysBetween = %d, want 2", got)
	}
}
