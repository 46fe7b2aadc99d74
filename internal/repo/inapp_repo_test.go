package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

func seedFeedEntry(t *testing.T, db *gorm.DB, tenantID, userID string, createdAt time.Time) *domain.InAppNotification {
	t.Helper()
	n, err := CreateInAppNotification(context.Background(), db, &domain.InAppNotification{
		TenantID:  tenantID,
		UserID:    userID,
		Title:     "t",
		Message:   "m",
		Category:  domain.CategoryInfo,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return n
}

func TestListInAppNotifications_NewestFirstAndScoped(t *testing.T) {
	db := newTestDB(t, &domain.InAppNotification{})
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	older := seedFeedEntry(t, db, "t1", "u1", base)
	newer := seedFeedEntry(t, db, "t1", "u1", base.Add(time.Hour))
	_ = seedFeedEntry(t, db, "t1", "u2", base)
	_ = seedFeedEntry(t, db, "t2", "u1", base)

	got, err := ListInAppNotifications(context.Background(), db, "t1", "u1", 0)
	if err != nil {
		t.Fatalf("ListInAppNotifications: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("unexpected feed: %+v", got)
	}
}

func TestMarkNotificationRead_ScopedToOwner(t *testing.T) {
	db := newTestDB(t, &domain.InAppNotification{})
	n := seedFeedEntry(t, db, "t1", "u1", time.Now().UTC())

	if err := MarkNotificationRead(context.Background(), db, "t1", "u2", n.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong owner: want ErrNotFound, got %v", err)
	}
	if err := MarkNotificationRead(context.Background(), db, "t1", "u1", n.ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	var got domain.InAppNotification
	if err := db.Where("id = ?", n.ID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Read {
		t.Fatal("read flag not persisted")
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := newTestDB(t, &domain.InAppNotification{})
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		seedFeedEntry(t, db, "t1", "u1", base.Add(time.Duration(i)*time.Minute))
	}
	keep := seedFeedEntry(t, db, "t1", "u2", base)

	if err := MarkAllNotificationsRead(context.Background(), db, "t1", "u1"); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}

	var unread int64
	if err := db.Model(&domain.InAppNotification{}).
		Where("tenant_id = ? AND user_id = ? AND read = ?", "t1", "u1", false).
		Count(&unread).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if unread != 0 {
		t.Fatalf("unread = %d, want 0", unread)
	}

	var other domain.InAppNotification
	if err := db.Where("id = ?", keep.ID).First(&other).Error; err != nil {
		t.Fatalf("reload other: %v", err)
	}
	if other.Read {
		t.Fatal("another user's entry was flagged")
	}
}

func TestPruneInAppNotifications_KeepsNewest(t *testing.T) {
	db := newTestDB(t, &domain.InAppNotification{})
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 5; i++ {
		n := seedFeedEntry(t, db, "t1", "u1", base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, n.ID)
	}

	if err := PruneInAppNotifications(context.Background(), db, "t1", "u1", 2); err != nil {
		t.Fatalf("PruneInAppNotifications: %v", err)
	}

	got, err := ListInAppNotifications(context.Background(), db, "t1", "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d entries, want 2", len(got))
	}
	wantNewest := map[string]bool{ids[4]: true, ids[3]: true}
	for _, n := range got {
		if !wantNewest[n.ID] {
			t.Fatalf("unexpected survivor %s (want the two newest)", n.ID)
		}
	}
}
