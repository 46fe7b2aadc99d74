package schedule

import (
	"testing"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

func slot(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestFindConflict_SameVetSameMinute(t *testing.T) {
	now := slot(2026, 9, 1, 8, 0)
	at := slot(2026, 9, 3, 10, 30)

	existing := []domain.Appointment{
		{ID: "a1", Veterinarian: "Dr. Smith", ScheduledAt: at},
	}

	got := FindConflict(Candidate{ScheduledAt: at, Veterinarian: "Dr. Smith"}, existing, now)
	if got == nil || got.ID != "a1" {
		t.Fatalf("expected conflict with a1, got %+v", got)
	}
}

func TestFindConflict_SecondsWithinMinuteStillCollide(t *testing.T) {
	now := slot(2026, 9, 1, 8, 0)
	existing := []domain.Appointment{
		{ID: "a1", Veterinarian: "Dr. Smith", ScheduledAt: slot(2026, 9, 3, 10, 30).Add(12 * time.Second)},
	}

	got := FindConflict(Candidate{ScheduledAt: slot(2026, 9, 3, 10, 30).Add(45 * time.Second), Veterinarian: "Dr. Smith"}, existing, now)
	if got == nil {
		t.Fatal("expected minute-resolution collision")
	}
}

func TestFindConflict_NoCollision(t *testing.T) {
	now := slot(2026, 9, 1, 8, 0)
	at := slot(2026, 9, 3, 10, 30)

	existing := []domain.Appointment{
		{ID: "other-vet", Veterinarian: "Dr. Jones", ScheduledAt: at},
		{ID: "other-minute", Veterinarian: "Dr. Smith", ScheduledAt: at.Add(time.Minute)},
		{ID: "other-day", Veterinarian: "Dr. Smith", ScheduledAt: at.Add(24 * time.Hour)},
	}

	if got := FindConflict(Candidate{ScheduledAt: at, Veterinarian: "Dr. Smith"}, existing, now); got != nil {
		t.Fatalf("expected free slot, got conflict with %s", got.ID)
	}
}

func TestFindConflict_CancelledFreesSlot(t *testing.T) {
	now := slot(2026, 9, 1, 8, 0)
	at := slot(2026, 9, 3, 10, 30)

	existing := []domain.Appointment{
		{ID: "a1", Veterinarian: "Dr. Smith", ScheduledAt: at, ExplicitStatus: domain.StatusCancelled},
	}

	if got := FindConflict(Candidate{ScheduledAt: at, Veterinarian: "Dr. Smith"}, existing, now); got != nil {
		t.Fatalf("cancelled appointment must not conflict, got %s", got.ID)
	}
}

func TestFindConflict_FirstListedWins(t *testing.T) {
	now := slot(2026, 9, 1, 8, 0)
	at := slot(2026, 9, 3, 10, 30)

	existing := []domain.Appointment{
		{ID: "first", Veterinarian: "Dr. Smith", ScheduledAt: at},
		{ID: "second", Veterinarian: "Dr. Smith", ScheduledAt: at},
	}

	got := FindConflict(Candidate{ScheduledAt: at, Veterinarian: "Dr. Smith"}, existing, now)
	if got == nil || got.ID != "first" {
		t.Fatalf("expected first listed conflict, got %+v", got)
	}
}
