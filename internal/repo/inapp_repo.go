// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// InAppNotification model — the server-side copy of the per-user feed.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// CreateInAppNotification inserts a feed entry for (tenant, user).
func CreateInAppNotification(ctx context.Context, db *gorm.DB, n *domain.InAppNotification) (*domain.InAppNotification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// ListInAppNotifications returns the newest feed entries for (tenant, user),
// capped at limit, ordered by creation time descending. Display-priority
// ordering is applied by the feed layer, not here.
func ListInAppNotifications(ctx context.Context, db *gorm.DB, tenantID, userID string, limit int) ([]domain.InAppNotification, error) {
	var out []domain.InAppNotification
	q := db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// MarkNotificationRead flags one feed entry as read. If no rows are affected
// (missing or wrong owner), it returns ErrNotFound.
func MarkNotificationRead(ctx context.Context, db *gorm.DB, tenantID, userID, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.InAppNotification{}).
		Where("tenant_id = ? AND user_id = ? AND id = ?", tenantID, userID, id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllNotificationsRead flags every feed entry of (tenant, user) as read.
func MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, tenantID, userID string) error {
	return db.WithContext(ctx).
		Model(&domain.InAppNotification{}).
		Where("tenant_id = ? AND user_id = ? AND read = ?", tenantID, userID, false).
		Update("read", true).Error
}

// PruneInAppNotifications deletes all but the newest keep entries for
// (tenant, user). The feed is bounded, so older entries are evicted rather
// than accumulated forever.
func PruneInAppNotifications(ctx context.Context, db *gorm.DB, tenantID, userID string, keep int) error {
	if keep <= 0 {
		return nil
	}
	sub := db.Model(&domain.InAppNotification{}).
		Select("id").
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at desc").
		Limit(keep)
	return db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND id NOT IN (?)", tenantID, userID, sub).
		Delete(&domain.InAppNotification{}).Error
}
