// Package domain defines the persistence models for appointments, reminder
// notification records, and in-app notifications. These types are mapped with
// GORM and form the core data layer of the clinic backend. Every row is
// scoped to a tenant (one clinic's data partition).
package domain

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus is the effective status of an appointment as shown to
// users. The pending/due values are derived from wall-clock time each time a
// record is viewed; approved/completed/cancelled are set explicitly by user
// actions and persisted.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusDue       AppointmentStatus = "due"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ReminderType is the bucketed lead-time category used to decide if and what
// reminder to send. An empty value means "no reminder".
type ReminderType string

const (
	ReminderToday    ReminderType = "today"
	ReminderTomorrow ReminderType = "tomorrow"
	ReminderTwoDays  ReminderType = "2days"
	ReminderUpcoming ReminderType = "upcoming"
	ReminderNone     ReminderType = ""
)

// DeliveryStatus tracks the outcome of an external delivery attempt for a
// NotificationRecord.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Category classifies an in-app notification for display priority. Two
// historical taxonomies coexist in one feed: the legacy booking categories
// (overdue, due, pending, new, cancelled) and the client feed categories
// (appointment, reminder, info, warning). Both are valid values of this one
// type; CategoryRank gives them a single total order.
type Category string

const (
	// Legacy booking feed taxonomy.
	CategoryOverdue   Category = "overdue"
	CategoryDue       Category = "due"
	CategoryPending   Category = "pending"
	CategoryNew       Category = "new"
	CategoryCancelled Category = "cancelled"

	// Client feed taxonomy.
	CategoryAppointment Category = "appointment"
	CategoryReminder    Category = "reminder"
	CategoryWarning     Category = "warning"
	CategoryInfo        Category = "info"
)

// categoryRanks maps every known category to its display priority. Lower
// ranks sort first. Legacy booking categories keep their historical ranks;
// client categories follow after them.
var categoryRanks = map[Category]int{
	CategoryOverdue:     1,
	CategoryDue:         2,
	CategoryPending:     3,
	CategoryNew:         4,
	CategoryCancelled:   5,
	CategoryAppointment: 6,
	CategoryReminder:    7,
	CategoryWarning:     8,
	CategoryInfo:        9,
}

// CategoryRank returns the display rank of c. Unknown categories sort last.
func CategoryRank(c Category) int {
	if r, ok := categoryRanks[c]; ok {
		return r
	}
	return 100
}

// Appointment represents a scheduled visit for a customer's pet with a
// veterinarian. The scheduled instant is stored as a proper timestamp; a zero
// value marks a record whose original stored representation could not be
// parsed (the engine fails open to "pending" for those).
//
// ExplicitStatus holds only user-set statuses (approved/completed/cancelled)
// and is empty while the status is purely time-derived. Once completed or
// cancelled the effective status is pinned and time derivation must not
// override it.
type Appointment struct {
	ID            string `json:"id"             gorm:"type:char(36);primaryKey"`
	TenantID      string `json:"tenant_id"      gorm:"type:varchar(64);not null;index:idx_tenant_appts,priority:1"`
	CustomerID    string `json:"customer_id"    gorm:"type:char(36);index"`
	CustomerName  string `json:"customer_name"  gorm:"type:varchar(255);not null"`
	CustomerEmail string `json:"customer_email" gorm:"type:varchar(255)"`
	PetName       string `json:"pet_name"       gorm:"type:varchar(255);not null"`
	Veterinarian  string `json:"veterinarian"   gorm:"type:varchar(255);not null;index"`

	ScheduledAt time.Time `json:"scheduled_at" gorm:"index:idx_tenant_appts,priority:2"`
	Reason      string    `json:"reason"       gorm:"type:text"`
	Notes       string    `json:"notes"        gorm:"type:text"`

	ExplicitStatus AppointmentStatus `json:"explicit_status,omitempty" gorm:"type:varchar(16);default:''"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`

	// EffectiveStatus is computed per view and never persisted.
	EffectiveStatus AppointmentStatus `json:"effective_status,omitempty" gorm:"-"`

	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Appointment.
func (Appointment) TableName() string { return "appointments" }

// NotificationRecord is the delivery audit entry for one reminder. The
// composite unique index over (tenant_id, appointment_id, notification_type)
// is the dedup key: at most one record may ever exist per pair, and the
// database enforces it even under concurrent dispatch ticks.
type NotificationRecord struct {
	ID            string `json:"id"             gorm:"type:char(36);primaryKey"`
	TenantID      string `json:"tenant_id"      gorm:"type:varchar(64);not null;uniqueIndex:ux_reminder_dedup,priority:1"`
	AppointmentID string `json:"appointment_id" gorm:"type:char(36);not null;uniqueIndex:ux_reminder_dedup,priority:2"`

	CustomerEmail string    `json:"customer_email" gorm:"type:varchar(255)"`
	CustomerName  string    `json:"customer_name"  gorm:"type:varchar(255)"`
	PetName       string    `json:"pet_name"       gorm:"type:varchar(255)"`
	AppointmentAt time.Time `json:"appointment_at"`

	NotificationType ReminderType   `json:"notification_type" gorm:"type:varchar(16);not null;uniqueIndex:ux_reminder_dedup,priority:3"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status"   gorm:"type:varchar(16);not null;default:'pending'"`
	EmailSent        bool           `json:"email_sent"`
	InAppSent        bool           `json:"in_app_notification_sent"`
	SentAt           *time.Time     `json:"sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for NotificationRecord.
func (NotificationRecord) TableName() string { return "notification_records" }

// InAppNotification is a single feed entry owned by a user within a tenant.
// Entries are produced both by the dispatch orchestrator (reminders) and by
// booking actions (approve/cancel/complete/create); both producers honor the
// same category/rank contract.
type InAppNotification struct {
	ID       string `json:"id"        gorm:"type:char(36);primaryKey"`
	TenantID string `json:"tenant_id" gorm:"type:varchar(64);not null;index:idx_tenant_user_feed,priority:1"`
	UserID   string `json:"user_id"   gorm:"type:varchar(64);not null;index:idx_tenant_user_feed,priority:2"`

	Title         string   `json:"title"    gorm:"type:varchar(255);not null"`
	Message       string   `json:"message"  gorm:"type:text;not null"`
	Category      Category `json:"category" gorm:"type:varchar(16);not null"`
	AppointmentID string   `json:"appointment_id,omitempty" gorm:"type:char(36);index"`

	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for InAppNotification.
func (InAppNotification) TableName() string { return "in_app_notifications" }

// NewReminderNotification builds the feed entry the dispatcher posts when a
// reminder fires. Title and message come from the (possibly personalized)
// e-mail content so both channels read the same.
func NewReminderNotification(tenantID, userID string, a *Appointment, title, message string, at time.Time) *InAppNotification {
	return &InAppNotification{
		TenantID:      tenantID,
		UserID:        userID,
		Title:         title,
		Message:       message,
		Category:      CategoryReminder,
		AppointmentID: a.ID,
		CreatedAt:     at.UTC(),
	}
}

// NewBookingNotification builds the feed entry a booking action posts
// (create, approve, complete, cancel, and the dispatcher's new-appointment
// announcements).
func NewBookingNotification(tenantID, userID string, a *Appointment, cat Category, title, message string, at time.Time) *InAppNotification {
	return &InAppNotification{
		TenantID:      tenantID,
		UserID:        userID,
		Title:         title,
		Message:       message,
		Category:      cat,
		AppointmentID: a.ID,
		CreatedAt:     at.UTC(),
	}
}

// Rank returns the display priority of the notification's category.
func (n *InAppNotification) Rank() int { return CategoryRank(n.Category) }

// TenantCursor records, per tenant, the creation instant of the newest
// appointment the dispatcher has already announced. It replaces a shared
// in-memory "last checked" watermark so that new-appointment detection
// survives restarts and never drifts across sessions.
type TenantCursor struct {
	TenantID   string    `json:"tenant_id"    gorm:"type:varchar(64);primaryKey"`
	LastSeenAt time.Time `json:"last_seen_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for TenantCursor.
func (TenantCursor) TableName() string { return "tenant_cursors" }
