package repo

import (
	"context"
	"testing"
	"time"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

func TestGetTenantCursor_MissingYieldsZero(t *testing.T) {
	db := newTestDB(t, &domain.TenantCursor{})

	c, err := GetTenantCursor(context.Background(), db, "t1")
	if err != nil {
		t.Fatalf("GetTenantCursor: %v", err)
	}
	if c.TenantID != "t1" || !c.LastSeenAt.IsZero() {
		t.Fatalf("unexpected zero cursor: %+v", c)
	}
}

func TestAdvanceTenantCursor_ForwardOnly(t *testing.T) {
	db := newTestDB(t, &domain.TenantCursor{})
	ctx := context.Background()

	t1 := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	if err := AdvanceTenantCursor(ctx, db, "t1", t2); err != nil {
		t.Fatalf("advance: %v", err)
	}
	// A late tick with an older instant must not rewind the cursor.
	if err := AdvanceTenantCursor(ctx, db, "t1", t1); err != nil {
		t.Fatalf("stale advance: %v", err)
	}

	c, err := GetTenantCursor(ctx, db, "t1")
	if err != nil {
		t.Fatalf("GetTenantCursor: %v", err)
	}
	if !c.LastSeenAt.Equal(t2) {
		t.Fatalf("cursor moved backwards: %v, want %v", c.LastSeenAt, t2)
	}
}

func TestAdvanceTenantCursor_PerTenant(t *testing.T) {
	db := newTestDB(t, &domain.TenantCursor{})
	ctx := context.Background()

	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if err := AdvanceTenantCursor(ctx, db, "t1", at); err != nil {
		t.Fatalf("advance t1: %v", err)
	}

	other, err := GetTenantCursor(ctx, db, "t2")
	if err != nil {
		t.Fatalf("GetTenantCursor t2: %v", err)
	}
	if !other.LastSeenAt.IsZero() {
		t.Fatalf("cursor leaked across tenants: %+v", other)
	}
}
