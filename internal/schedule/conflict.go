package schedule

import (
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// Candidate is a prospective booking slot checked for collisions.
type Candidate struct {
	ScheduledAt  time.Time
	Veterinarian string
}

// FindConflict reports the first existing appointment that collides with the
// candidate slot, or nil when the slot is free.
//
// A collision requires the same calendar day, the same wall time at minute
// resolution, and the same veterinarian. Appointments whose derived status is
// cancelled never conflict (cancelling frees the slot). The scan preserves
// input order, so with several collisions the earliest-listed one is
// returned. The check is advisory: the caller decides whether to block or
// merely warn, and no lock is held between check and booking.
func FindConflict(c Candidate, existing []domain.Appointment, now time.Time) *domain.Appointment {
	for i := range existing {
		a := &existing[i]
		if Derive(a, now) == domain.StatusCancelled {
			continue
		}
		if a.Veterinarian != c.Veterinarian {
			continue
		}
		if !sameSlot(a.ScheduledAt, c.ScheduledAt) {
			continue
		}
		return a
	}
	return nil
}

// sameSlot reports whether two instants fall on the same calendar day and
// the same minute of that day.
func sameSlot(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by || am != bm || ad != bd {
		return false
	}
	return a.Hour() == b.Hour() && a.Minute() == b.Minute()
}
