// Package services – AppointmentService
//
// This file implements AppointmentService, the application-level component
// that owns the booking lifecycle: creating appointments (with an advisory
// conflict check), the explicit status actions (approve, complete, cancel),
// and listing with the derived effective status.
//
// Booking actions are the feed's second producer: each one pushes an in-app
// notification directly, bypassing the reminder dispatcher, under the same
// category/rank contract.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// tenant and appointment identifiers.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pawdesk/go-vet-backend/internal/domain"
	"github.com/pawdesk/go-vet-backend/internal/feed"
	"github.com/pawdesk/go-vet-backend/internal/repo"
	"github.com/pawdesk/go-vet-backend/internal/schedule"
)

// BookingInput carries the fields of a booking form.
type BookingInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	PetName       string
	Veterinarian  string
	ScheduledAt   time.Time
	Reason        string
	Notes         string

	// Force books the slot even when the advisory conflict check reports a
	// collision.
	Force bool
}

// AppointmentService coordinates appointment persistence, conflict checking,
// and booking-action notifications.
type AppointmentService struct {
	DB   *gorm.DB
	Feed *feed.Feed

	// Now supplies wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func (s *AppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// titleCaser renders customer-facing pet names in notification titles.
var titleCaser = cases.Title(language.English)

// Create validates the booking, runs the advisory conflict check over the
// candidate day, persists the appointment, and announces it in the booker's
// feed. When a conflict exists and input.Force is false it returns
// ErrSlotConflict together with the conflicting appointment so the caller
// can decide whether to block or merely warn.
func (s *AppointmentService) Create(ctx context.Context, tenantID, userID string, in BookingInput) (*domain.Appointment, *domain.Appointment, error) {
	tr := otel.Tracer("services/AppointmentService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("veterinarian", in.Veterinarian),
		),
	)
	defer span.End()

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.PetName = strings.TrimSpace(in.PetName)
	in.Veterinarian = strings.TrimSpace(in.Veterinarian)
	if in.CustomerName == "" || in.PetName == "" || in.Veterinarian == "" || in.ScheduledAt.IsZero() {
		return nil, nil, ErrInvalidInput
	}

	now := s.now()

	sameDay, err := repo.ListAppointmentsOnDay(ctx, s.DB, tenantID, in.ScheduledAt)
	if err != nil {
		return nil, nil, err
	}
	conflict := schedule.FindConflict(schedule.Candidate{
		ScheduledAt:  in.ScheduledAt,
		Veterinarian: in.Veterinarian,
	}, sameDay, now)
	if conflict != nil && !in.Force {
		return nil, conflict, ErrSlotConflict
	}

	a, err := repo.CreateAppointment(ctx, s.DB, &domain.Appointment{
		TenantID:      tenantID,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		PetName:       in.PetName,
		Veterinarian:  in.Veterinarian,
		ScheduledAt:   in.ScheduledAt,
		Reason:        strings.TrimSpace(in.Reason),
		Notes:         strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return nil, conflict, err
	}
	a.EffectiveStatus = schedule.Derive(a, now)

	s.pushBookingNotification(ctx, tenantID, userID, a, domain.CategoryNew,
		"New appointment booked",
		fmt.Sprintf("%s (%s) with %s on %s.", titleCaser.String(a.PetName), a.CustomerName, a.Veterinarian, a.ScheduledAt.Format("Mon, 02 Jan 15:04")))

	return a, conflict, nil
}

// CheckConflict runs the advisory conflict check for a candidate slot
// without booking anything.
func (s *AppointmentService) CheckConflict(ctx context.Context, tenantID string, c schedule.Candidate) (*domain.Appointment, error) {
	sameDay, err := repo.ListAppointmentsOnDay(ctx, s.DB, tenantID, c.ScheduledAt)
	if err != nil {
		return nil, err
	}
	return schedule.FindConflict(c, sameDay, s.now()), nil
}

// Get fetches one appointment with its derived effective status.
func (s *AppointmentService) Get(ctx context.Context, tenantID, id string) (*domain.Appointment, error) {
	a, err := repo.GetAppointment(ctx, s.DB, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	a.EffectiveStatus = schedule.Derive(a, s.now())
	return a, nil
}

// ListPage returns a page of the tenant's appointments, each with its derived
// effective status, plus the total count for pagination metadata.
func (s *AppointmentService) ListPage(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Appointment, int64, error) {
	tr := otel.Tracer("services/AppointmentService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountAppointments(ctx, s.DB, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Appointment{}, 0, nil
	}

	items, err := repo.ListAppointmentsPage(ctx, s.DB, tenantID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for i := range items {
		items[i].EffectiveStatus = schedule.Derive(&items[i], now)
	}
	return items, total, nil
}

// Approve marks a pending appointment as approved. Final statuses are
// pinned: approving a completed or cancelled appointment fails with
// ErrStatusPinned.
func (s *AppointmentService) Approve(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error) {
	return s.transition(ctx, tenantID, userID, id, domain.StatusApproved, domain.CategoryPending,
		"Appointment approved")
}

// Complete marks an appointment as completed and records the completion
// instant. Cancelled appointments cannot be completed.
func (s *AppointmentService) Complete(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error) {
	return s.transition(ctx, tenantID, userID, id, domain.StatusCompleted, domain.CategoryAppointment,
		"Appointment completed")
}

// Cancel marks an appointment as cancelled, freeing its slot for conflict
// checks. Completed appointments cannot be cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error) {
	return s.transition(ctx, tenantID, userID, id, domain.StatusCancelled, domain.CategoryCancelled,
		"Appointment cancelled")
}

// transition applies an explicit status change and pushes the corresponding
// feed notification.
func (s *AppointmentService) transition(ctx context.Context, tenantID, userID, id string, to domain.AppointmentStatus, cat domain.Category, title string) (*domain.Appointment, error) {
	tr := otel.Tracer("services/AppointmentService")
	ctx, span := tr.Start(ctx, "transition",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("appointment.id", id),
			attribute.String("status", string(to)),
		),
	)
	defer span.End()

	a, err := repo.GetAppointment(ctx, s.DB, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if a.ExplicitStatus == domain.StatusCompleted || a.ExplicitStatus == domain.StatusCancelled {
		return nil, ErrStatusPinned
	}

	now := s.now()
	var completedAt *time.Time
	if to == domain.StatusCompleted {
		t := now.UTC()
		completedAt = &t
	}
	if err := repo.UpdateExplicitStatus(ctx, s.DB, tenantID, id, to, completedAt); err != nil {
		return nil, err
	}
	a.ExplicitStatus = to
	a.CompletedAt = completedAt
	a.EffectiveStatus = schedule.Derive(a, now)

	s.pushBookingNotification(ctx, tenantID, userID, a, cat, title,
		fmt.Sprintf("%s's appointment on %s is now %s.", titleCaser.String(a.PetName), a.ScheduledAt.Format("Mon, 02 Jan 15:04"), to))

	return a, nil
}

// pushBookingNotification persists a feed entry and mirrors it into the
// in-memory feed. Feed delivery is best-effort: a persistence failure is
// logged by the repo caller but must not fail the booking action itself.
func (s *AppointmentService) pushBookingNotification(ctx context.Context, tenantID, userID string, a *domain.Appointment, cat domain.Category, title, message string) {
	n := domain.NewBookingNotification(tenantID, userID, a, cat, title, message, s.now())
	if _, err := repo.CreateInAppNotification(ctx, s.DB, n); err != nil {
		// Keep the in-memory feed consistent even when the DB copy failed.
		trace.SpanFromContext(ctx).RecordError(err)
	}
	if s.Feed != nil {
		s.Feed.Add(n)
	}
}
