package schedule

import (
	"testing"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

func TestClassify_Buckets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want domain.ReminderType
	}{
		{"later today", now.Add(6 * time.Hour), domain.ReminderTomorrow}, // ceil(6h/24h)=1
		{"just passed", now.Add(-time.Hour), domain.ReminderToday},       // ceil(-1h/24h)=0
		{"exactly now", now, domain.ReminderToday},
		{"exactly 24h", now.Add(24 * time.Hour), domain.ReminderTomorrow},
		{"36h out", now.Add(36 * time.Hour), domain.ReminderTwoDays},
		{"exactly 48h", now.Add(48 * time.Hour), domain.ReminderTwoDays},
		{"3 days out", now.Add(60 * time.Hour), domain.ReminderUpcoming},
		{"exactly 7 days", now.Add(7 * 24 * time.Hour), domain.ReminderUpcoming},
		{"8 days out", now.Add(8 * 24 * time.Hour), domain.ReminderNone},
		{"25h in the past", now.Add(-25 * time.Hour), domain.ReminderNone},
		{"way in the past", now.Add(-30 * 24 * time.Hour), domain.ReminderNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.at, now); got != tc.want {
				t.Fatalf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassify_ZeroInstant(t *testing.T) {
	if got := Classify(time.Time{}, time.Now()); got != domain.ReminderNone {
		t.Fatalf("zero instant: got %q, want none", got)
	}
}
