package schedule

import (
	"time"

	"github.com/pawdesk/go-vet-backend/internal/clock"
	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// Classify buckets an appointment's lead time into a reminder type.
//
// The day delta is ceil((scheduled - now) / 24h): 0 maps to today, 1 to
// tomorrow, 2 to 2days, 3 through 7 to upcoming. Anything else, including
// appointments more than a day in the past, yields ReminderNone.
func Classify(scheduled, now time.Time) domain.ReminderType {
	if scheduled.IsZero() {
		return domain.ReminderNone
	}
	switch d := clock.DaysUntil(scheduled, now); {
	case d == 0:
		return domain.ReminderToday
	case d == 1:
		return domain.ReminderTomorrow
	case d == 2:
		return domain.ReminderTwoDays
	case d >= 3 && d <= 7:
		return domain.ReminderUpcoming
	default:
		return domain.ReminderNone
	}
}
