package domain

import (
	"testing"
	"time"
)

func TestCategoryRank_TotalOrder(t *testing.T) {
	ordered := []Category{
		CategoryOverdue, CategoryDue, CategoryPending, CategoryNew,
		CategoryCancelled, CategoryAppointment, CategoryReminder,
		CategoryWarning, CategoryInfo,
	}
	prev := 0
	for _, c := range ordered {
		r := CategoryRank(c)
		if r <= prev {
			t.Fatalf("rank(%q) = %d, not greater than previous %d", c, r, prev)
		}
		prev = r
	}
}

func TestCategoryRank_UnknownSortsLast(t *testing.T) {
	unknown := CategoryRank("promo")
	for c := range categoryRanks {
		if CategoryRank(c) >= unknown {
			t.Fatalf("known category %q does not sort before unknown", c)
		}
	}
}

func TestInAppNotificationRank(t *testing.T) {
	n := &InAppNotification{Category: CategoryOverdue}
	if n.Rank() != CategoryRank(CategoryOverdue) {
		t.Fatalf("Rank() = %d", n.Rank())
	}
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		Appointment{}.TableName():        "appointments",
		NotificationRecord{}.TableName(): "notification_records",
		InAppNotification{}.TableName():  "in_app_notifications",
		TenantCursor{}.TableName():       "tenant_cursors",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("table name %q, want %q", got, want)
		}
	}
}

func TestNotificationConstructors(t *testing.T) {
	at := time.Date(2026, 9, 3, 10, 30, 0, 0, time.FixedZone("EET", 2*3600))
	a := &Appointment{ID: "appt-1"}

	r := NewReminderNotification("happypaws", "system", a, "Reminder", "Tomorrow at 10:30", at)
	if r.Category != CategoryReminder || r.AppointmentID != "appt-1" {
		t.Fatalf("unexpected reminder notification: %+v", r)
	}
	if r.CreatedAt.Location() != time.UTC {
		t.Fatal("constructor must normalize instants to UTC")
	}

	b := NewBookingNotification("happypaws", "u1", a, CategoryCancelled, "Cancelled", "Visit cancelled", at)
	if b.Category != CategoryCancelled || b.UserID != "u1" {
		t.Fatalf("unexpected booking notification: %+v", b)
	}
}
