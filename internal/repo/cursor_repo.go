// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the per-tenant dispatch cursor used for
// new-appointment detection.
//
// The cursor replaces a process-global "last checked" timestamp: it is
// persisted, read explicitly at the start of a tick, and only ever advanced
// forward, so restarts and concurrent sessions cannot drift it backwards.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// GetTenantCursor returns the tenant's cursor, or a zero-valued cursor when
// none has been persisted yet.
func GetTenantCursor(ctx context.Context, db *gorm.DB, tenantID string) (domain.TenantCursor, error) {
	var c domain.TenantCursor
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TenantCursor{TenantID: tenantID}, nil
	}
	return c, err
}

// AdvanceTenantCursor moves the tenant's cursor forward to seenAt. Moves
// backwards are ignored so overlapping ticks cannot rewind it.
func AdvanceTenantCursor(ctx context.Context, db *gorm.DB, tenantID string, seenAt time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_seen_at": gorm.Expr("MAX(last_seen_at, excluded.last_seen_at)"),
				"updated_at":   time.Now().UTC(),
			}),
		}).
		Create(&domain.TenantCursor{
			TenantID:   tenantID,
			LastSeenAt: seenAt,
			UpdatedAt:  time.Now().UTC(),
		}).Error
}
