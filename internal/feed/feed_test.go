package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

func entry(id string, cat domain.Category, createdAt time.Time) *domain.InAppNotification {
	return &domain.InAppNotification{
		ID:        id,
		TenantID:  "t1",
		UserID:    "u1",
		Title:     "t",
		Message:   "m",
		Category:  cat,
		CreatedAt: createdAt,
	}
}

func TestAdd_SortsByRankThenRecency(t *testing.T) {
	f := New("") // no persistence
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.Add(entry("cancelled", domain.CategoryCancelled, base.Add(3*time.Minute)))
	f.Add(entry("overdue", domain.CategoryOverdue, base))
	f.Add(entry("pending", domain.CategoryPending, base.Add(time.Minute)))

	got := f.List("t1", "u1")
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	want := []string{"overdue", "pending", "cancelled"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (full: %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func TestAdd_NewestFirstWithinRank(t *testing.T) {
	f := New("")
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.Add(entry("older", domain.CategoryReminder, base))
	f.Add(entry("newer", domain.CategoryReminder, base.Add(time.Hour)))

	got := f.List("t1", "u1")
	if got[0].ID != "newer" || got[1].ID != "older" {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestAdd_CapEvictsOldestRegardlessOfRank(t *testing.T) {
	f := New("")
	f.Cap = 3
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// The oldest entry has the best rank; the cap still drops it.
	f.Add(entry("oldest-overdue", domain.CategoryOverdue, base))
	f.Add(entry("n1", domain.CategoryInfo, base.Add(1*time.Minute)))
	f.Add(entry("n2", domain.CategoryInfo, base.Add(2*time.Minute)))
	f.Add(entry("n3", domain.CategoryInfo, base.Add(3*time.Minute)))

	got := f.List("t1", "u1")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, n := range got {
		if n.ID == "oldest-overdue" {
			t.Fatalf("oldest entry should have been evicted: %v", ids(got))
		}
	}
}

func TestFeed_IsolatedPerTenantAndUser(t *testing.T) {
	f := New("")
	now := time.Now().UTC()

	f.Add(entry("mine", domain.CategoryInfo, now))
	other := entry("theirs", domain.CategoryInfo, now)
	other.UserID = "u2"
	f.Add(other)
	foreign := entry("foreign", domain.CategoryInfo, now)
	foreign.TenantID = "t2"
	f.Add(foreign)

	if got := f.List("t1", "u1"); len(got) != 1 || got[0].ID != "mine" {
		t.Fatalf("unexpected feed: %v", ids(got))
	}
}

func TestMarkReadAndUnread(t *testing.T) {
	f := New("")
	now := time.Now().UTC()

	f.Add(entry("a", domain.CategoryInfo, now))
	f.Add(entry("b", domain.CategoryInfo, now.Add(time.Minute)))

	if got := f.Unread("t1", "u1"); got != 2 {
		t.Fatalf("Unread = %d, want 2", got)
	}
	if !f.MarkRead("t1", "u1", "a") {
		t.Fatal("MarkRead missed existing entry")
	}
	if f.MarkRead("t1", "u1", "nope") {
		t.Fatal("MarkRead hit missing entry")
	}
	if got := f.Unread("t1", "u1"); got != 1 {
		t.Fatalf("Unread = %d, want 1", got)
	}

	f.MarkAllRead("t1", "u1")
	if got := f.Unread("t1", "u1"); got != 0 {
		t.Fatalf("Unread after MarkAllRead = %d, want 0", got)
	}
}

func TestSnapshotAndLoad_RoundTripsInstants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	f := New(path)
	at := time.Date(2026, 9, 1, 12, 0, 0, 123456789, time.UTC)

	f.Add(entry("a", domain.CategoryReminder, at))
	f.MarkRead("t1", "u1", "a")

	g := New(path)
	if err := g.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := g.List("t1", "u1")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].CreatedAt.Equal(at) {
		t.Fatalf("instant not reconstructed: %v, want %v", got[0].CreatedAt, at)
	}
	if !got[0].Read {
		t.Fatal("read flag lost across snapshot")
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "absent.json"))
	if err := f.Load(); err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
}

func TestLoad_DropsUnparsableInstants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	raw := `[
	  {"id":"ok","tenant_id":"t1","user_id":"u1","title":"t","message":"m","category":"info","read":false,"created_at":"2026-09-01T12:00:00Z"},
	  {"id":"bad","tenant_id":"t1","user_id":"u1","title":"t","message":"m","category":"info","read":false,"created_at":"not-a-time"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	f := New(path)
	if err := f.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := f.List("t1", "u1")
	if len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("unexpected survivors: %v", ids(got))
	}
}

func TestLoad_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if err := New(path).Load(); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func ids(entries []domain.InAppNotification) string {
	s := ""
	for i, n := range entries {
		if i > 0 {
			s += ","
		}
		s += n.ID
	}
	return fmt.Sprintf("[%s]", s)
}
