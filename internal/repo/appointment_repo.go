// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Appointment model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Every query is tenant-scoped.
//
// Error semantics:
//   - When an appointment is not found, functions return
//     gorm.ErrRecordNotFound (also exported here as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawdesk/go-vet-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAppointment inserts a new appointment row for the tenant. The ID is
// a randomly generated UUID and CreatedAt is set to UTC.
func CreateAppointment(ctx context.Context, db *gorm.DB, a *domain.Appointment) (*domain.Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAppointment fetches a single appointment by ID within the tenant. If the
// record does not exist, it returns ErrNotFound.
func GetAppointment(ctx context.Context, db *gorm.DB, tenantID, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CountAppointments returns the total number of appointments in the tenant.
func CountAppointments(ctx context.Context, db *gorm.DB, tenantID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error
	return total, err
}

// ListAppointmentsPage returns a paginated slice of appointments for the
// tenant, ordered by scheduled instant ascending. Use CountAppointments to
// obtain the total for pagination metadata.
func ListAppointmentsPage(ctx context.Context, db *gorm.DB, tenantID string, offset, limit int) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("scheduled_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAppointmentsBetween returns appointments whose scheduled instant falls
// in [from, to), ordered by scheduled instant ascending. This is the
// dispatcher's window fetch.
func ListAppointmentsBetween(ctx context.Context, db *gorm.DB, tenantID string, from, to time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantID, from, to).
		Order("scheduled_at asc").
		Find(&out).Error
	return out, err
}

// ListAppointmentsOnDay returns all appointments on the calendar day of the
// given instant (local midnight to midnight), in creation order. Conflict
// checks run over this set.
func ListAppointmentsOnDay(ctx context.Context, db *gorm.DB, tenantID string, day time.Time) ([]domain.Appointment, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantID, start, end).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListAppointmentsCreatedAfter returns appointments created strictly after
// the given instant, ordered by creation time ascending. The dispatcher uses
// it with the persisted tenant cursor to announce new bookings exactly once.
func ListAppointmentsCreatedAfter(ctx context.Context, db *gorm.DB, tenantID string, after time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND created_at > ?", tenantID, after).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// UpdateExplicitStatus sets the explicit status of an appointment. When the
// status is completed, completedAt should carry the completion instant;
// otherwise pass nil. If no rows are affected (missing or wrong tenant), it
// returns ErrNotFound.
func UpdateExplicitStatus(ctx context.Context, db *gorm.DB, tenantID, id string, status domain.AppointmentStatus, completedAt *time.Time) error {
	updates := map[string]any{"explicit_status": status}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	res := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
