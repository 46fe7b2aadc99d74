// Package services – DispatchService
//
// This file implements the reminder dispatch orchestrator. Each tick fetches
// the tenant's appointments inside the reminder window, classifies their lead
// time, consults the dedup ledger, and on a miss creates the delivery-audit
// record, attempts the external e-mail, and emits the in-app notification.
//
// Guarantees per (appointment, reminder type) pair:
//   - exactly one NotificationRecord, enforced by the ledger's unique index;
//   - the in-app notification is delivered unconditionally once created,
//     independent of the e-mail outcome;
//   - a failing collaborator never aborts the tick for other appointments.
//
// Storage failures, by contrast, abort the tick and propagate; appointments
// already processed keep their results and the next interval retries the
// rest.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawdesk/go-vet-backend/internal/domain"
	"github.com/pawdesk/go-vet-backend/internal/feed"
	"github.com/pawdesk/go-vet-backend/internal/notify"
	"github.com/pawdesk/go-vet-backend/internal/repo"
	"github.com/pawdesk/go-vet-backend/internal/schedule"
)

var (
	// remindersProcessed counts reminders that produced a notification
	// record, by reminder type and final delivery status.
	remindersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_processed_total",
			Help: "Reminder notifications produced, by type and delivery status.",
		},
		[]string{"type", "status"},
	)

	// reminderEmailFailures counts e-mail collaborator failures.
	reminderEmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_email_failures_total",
			Help: "Reminder e-mail deliveries that failed.",
		},
	)

	// reminderAnomalies counts appointments skipped for unusable instants.
	reminderAnomalies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_instant_anomalies_total",
			Help: "Appointments with an unparsable scheduled instant seen during dispatch.",
		},
	)
)

func init() {
	prometheus.MustRegister(remindersProcessed, reminderEmailFailures, reminderAnomalies)
}

// DefaultFetchWindow is the dispatcher's look-ahead. It matches the original
// application's two-day window; the 3–7 day "upcoming" bucket only fires
// when the operator widens it via configuration.
const DefaultFetchWindow = 48 * time.Hour

// DispatchService polls due appointments and fans reminders out to the
// e-mail channel and the in-app feed, exactly once per dedup key.
type DispatchService struct {
	DB           *gorm.DB
	Feed         *feed.Feed
	Email        notify.EmailSender
	Personalizer notify.Personalizer

	// FetchWindow bounds the appointment fetch; <=0 means DefaultFetchWindow.
	FetchWindow time.Duration

	// Now supplies wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func (s *DispatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DispatchService) window() time.Duration {
	if s.FetchWindow <= 0 {
		return DefaultFetchWindow
	}
	return s.FetchWindow
}

// ProcessDueReminders runs one dispatch tick for a tenant on behalf of
// asUserID (the operator whose feed receives the in-app copies). It is safe
// to invoke concurrently with itself; the ledger's conditional insert keeps
// the exactly-once guarantee.
func (s *DispatchService) ProcessDueReminders(ctx context.Context, tenantID, asUserID string) error {
	tr := otel.Tracer("services/DispatchService")
	ctx, span := tr.Start(ctx, "ProcessDueReminders",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	now := s.now()

	if err := s.announceNewAppointments(ctx, tenantID, asUserID, now); err != nil {
		return err
	}

	appts, err := repo.ListAppointmentsBetween(ctx, s.DB, tenantID, now, now.Add(s.window()))
	if err != nil {
		return err
	}

	for i := range appts {
		a := &appts[i]

		status, derr := schedule.DeriveStrict(a, now)
		if derr != nil {
			reminderAnomalies.Inc()
			log.Warn().Str("appointment_id", a.ID).Str("tenant_id", tenantID).
				Msg("skipping reminder for appointment with unusable scheduled instant")
			continue
		}
		if status == domain.StatusCompleted || status == domain.StatusCancelled {
			continue
		}

		rt := schedule.Classify(a.ScheduledAt, now)
		if rt == domain.ReminderNone {
			continue
		}

		seen, err := repo.AlreadyNotified(ctx, s.DB, tenantID, a.ID, rt)
		if err != nil {
			return err
		}
		if seen {
			continue
		}

		if err := s.dispatchOne(ctx, tenantID, asUserID, a, rt, now); err != nil {
			return err
		}
	}
	return nil
}

// dispatchOne handles a single (appointment, reminder type) pair: ledger
// insert, e-mail attempt, in-app notification, delivery-status update.
// Only storage errors are returned; collaborator failures are absorbed into
// the record's delivery status.
func (s *DispatchService) dispatchOne(ctx context.Context, tenantID, asUserID string, a *domain.Appointment, rt domain.ReminderType, now time.Time) error {
	rec, err := repo.CreateNotificationRecord(ctx, s.DB, &domain.NotificationRecord{
		TenantID:         tenantID,
		AppointmentID:    a.ID,
		CustomerEmail:    a.CustomerEmail,
		CustomerName:     a.CustomerName,
		PetName:          a.PetName,
		AppointmentAt:    a.ScheduledAt,
		NotificationType: rt,
		DeliveryStatus:   domain.DeliveryPending,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		// A concurrent tick won the insert; the pair is handled.
		return nil
	}
	if err != nil {
		return err
	}

	// Advisory enrichment; always yields usable values.
	p := s.personalization(ctx, a, rt)

	emailErr := errors.New("no customer e-mail on file")
	if a.CustomerEmail != "" {
		emailErr = s.Email.SendAppointmentReminder(ctx, notify.ReminderEmail{
			To:            a.CustomerEmail,
			CustomerName:  a.CustomerName,
			PetName:       a.PetName,
			AppointmentAt: a.ScheduledAt,
			ReminderType:  rt,
			Subject:       p.Subject,
			Message:       p.Message,
		})
	}
	if emailErr != nil {
		reminderEmailFailures.Inc()
		log.Warn().Err(emailErr).Str("appointment_id", a.ID).Str("type", string(rt)).
			Msg("reminder e-mail delivery failed")
	}

	n := domain.NewReminderNotification(tenantID, asUserID, a, p.Subject, p.Message, now)
	if _, err := repo.CreateInAppNotification(ctx, s.DB, n); err != nil {
		return err
	}
	if s.Feed != nil {
		s.Feed.Add(n)
	}

	status := domain.DeliverySent
	if emailErr != nil {
		status = domain.DeliveryFailed
	}
	if err := repo.MarkNotificationDelivery(ctx, s.DB, tenantID, rec.ID, status, emailErr == nil, now.UTC()); err != nil {
		return err
	}

	remindersProcessed.WithLabelValues(string(rt), string(status)).Inc()
	return nil
}

// personalization fetches AI copy for the reminder, falling back to the
// static template when no personalizer is wired.
func (s *DispatchService) personalization(ctx context.Context, a *domain.Appointment, rt domain.ReminderType) notify.Personalization {
	if s.Personalizer == nil {
		return notify.FallbackPersonalization(a.CustomerName, a.PetName, rt)
	}
	return s.Personalizer.PersonalizeEmail(ctx, a.CustomerName, a.PetName, a.ScheduledAt, rt)
}

// announceNewAppointments pushes a feed entry for every appointment created
// since the persisted tenant cursor, then advances the cursor to the newest
// creation instant it saw.
func (s *DispatchService) announceNewAppointments(ctx context.Context, tenantID, asUserID string, now time.Time) error {
	cursor, err := repo.GetTenantCursor(ctx, s.DB, tenantID)
	if err != nil {
		return err
	}
	if cursor.LastSeenAt.IsZero() {
		// First tick for this tenant: start the cursor at now instead of
		// announcing the whole backlog.
		return repo.AdvanceTenantCursor(ctx, s.DB, tenantID, now.UTC())
	}

	created, err := repo.ListAppointmentsCreatedAfter(ctx, s.DB, tenantID, cursor.LastSeenAt)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return nil
	}

	newest := cursor.LastSeenAt
	for i := range created {
		a := &created[i]
		if a.CreatedAt.After(newest) {
			newest = a.CreatedAt
		}

		n := domain.NewBookingNotification(tenantID, asUserID, a, domain.CategoryNew, "New appointment",
			fmt.Sprintf("%s booked %s with %s for %s.", a.CustomerName, a.PetName, a.Veterinarian, a.ScheduledAt.Format("Mon, 02 Jan 15:04")), now)
		if _, err := repo.CreateInAppNotification(ctx, s.DB, n); err != nil {
			return err
		}
		if s.Feed != nil {
			s.Feed.Add(n)
		}
	}

	return repo.AdvanceTenantCursor(ctx, s.DB, tenantID, newest)
}
