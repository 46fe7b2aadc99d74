// Package schedule implements the pure scheduling logic of the engine:
// effective-status derivation, practitioner conflict detection, and reminder
// classification. Everything here is side-effect free and safe to call
// concurrently on every render or poll tick.
package schedule

import (
	"errors"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// ErrBadInstant marks an appointment whose stored scheduled instant could not
// be parsed at ingestion time (it is stored as the zero time). Derivation
// fails open to pending for such records; callers that care log the anomaly.
var ErrBadInstant = errors.New("appointment has no usable scheduled instant")

// Derive maps an appointment and the current time to its effective status.
//
// Explicit completed/cancelled statuses pin the result regardless of time.
// Otherwise the appointment is due once its scheduled instant has passed and
// pending before that. Records with an unusable instant derive as pending.
func Derive(a *domain.Appointment, now time.Time) domain.AppointmentStatus {
	s, _ := DeriveStrict(a, now)
	return s
}

// DeriveStrict behaves like Derive but additionally reports ErrBadInstant
// when the scheduled instant is unusable, so batch callers can surface the
// anomaly without aborting.
func DeriveStrict(a *domain.Appointment, now time.Time) (domain.AppointmentStatus, error) {
	switch a.ExplicitStatus {
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	}

	if a.ScheduledAt.IsZero() {
		return domain.StatusPending, ErrBadInstant
	}

	if !a.ScheduledAt.After(now) {
		return domain.StatusDue, nil
	}
	return domain.StatusPending, nil
}
