// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the reminder dedup ledger over the
// NotificationRecord model.
//
// The ledger has exactly two operations: an existence probe and an
// append-only insert. The insert is conditional at the database level — the
// composite unique index on (tenant_id, appointment_id, notification_type)
// rejects a second record for the same pair, and the violation is mapped to
// ErrDuplicate. That makes the ledger safe under overlapping dispatch ticks
// without any application-level locking; callers treat ErrDuplicate as
// "another tick got there first" and move on.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// ErrDuplicate indicates that a notification record already exists for the
// given (tenant, appointment, reminder type) dedup key.
var ErrDuplicate = errors.New("duplicate notification record")

// AlreadyNotified reports whether a notification record exists for the dedup
// key. It is a cheap pre-filter; the insert itself remains the authoritative
// dedup step.
func AlreadyNotified(ctx context.Context, db *gorm.DB, tenantID, appointmentID string, rt domain.ReminderType) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("tenant_id = ? AND appointment_id = ? AND notification_type = ?", tenantID, appointmentID, rt).
		Count(&n).Error
	return n > 0, err
}

// CreateNotificationRecord appends a pending delivery-audit entry for the
// dedup key. It returns ErrDuplicate when a record for the key already
// exists; the entry is never overwritten.
func CreateNotificationRecord(ctx context.Context, db *gorm.DB, rec *domain.NotificationRecord) (*domain.NotificationRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.DeliveryStatus == "" {
		rec.DeliveryStatus = domain.DeliveryPending
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// MarkNotificationDelivery records the outcome of the delivery attempt for a
// notification record: the final delivery status, whether the email went out,
// and the sent instant. The in-app flag is always set because an in-app
// notification is considered delivered once it is created locally.
func MarkNotificationDelivery(ctx context.Context, db *gorm.DB, tenantID, id string, status domain.DeliveryStatus, emailSent bool, sentAt time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{
			"delivery_status": status,
			"email_sent":      emailSent,
			"in_app_sent":     true,
			"sent_at":         sentAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeliveryStats aggregates notification records per delivery status for a
// tenant. Surfaced on the admin stats endpoint.
type DeliveryStats struct {
	Pending int64 `json:"pending"`
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
}

// CountDeliveryOutcomes returns per-status totals over the tenant's
// notification records.
func CountDeliveryOutcomes(ctx context.Context, db *gorm.DB, tenantID string) (DeliveryStats, error) {
	type row struct {
		DeliveryStatus domain.DeliveryStatus
		N              int64
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Select("delivery_status, count(*) as n").
		Where("tenant_id = ?", tenantID).
		Group("delivery_status").
		Scan(&rows).Error
	if err != nil {
		return DeliveryStats{}, err
	}

	var out DeliveryStats
	for _, r := range rows {
		switch r.DeliveryStatus {
		case domain.DeliveryPending:
			out.Pending = r.N
		case domain.DeliverySent:
			out.Sent = r.N
		case domain.DeliveryFailed:
			out.Failed = r.N
		}
	}
	return out, nil
}
