// Appointment HTTP handlers.
//
// This file exposes REST endpoints for appointment resources:
//   - POST   /appointments                 (book, advisory conflict check)
//   - GET    /appointments                 (list, paginated, derived status)
//   - GET    /appointments/conflict        (probe a candidate slot)
//   - GET    /appointments/{id}            (fetch one)
//   - POST   /appointments/{id}/approve    (explicit status action)
//   - POST   /appointments/{id}/complete   (explicit status action)
//   - POST   /appointments/{id}/cancel     (explicit status action)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Tenant and user identity come
// from the Tenant middleware.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawdesk/go-vet-backend/internal/clock"
	"github.com/pawdesk/go-vet-backend/internal/domain"
	"github.com/pawdesk/go-vet-backend/internal/http/middleware"
	"github.com/pawdesk/go-vet-backend/internal/schedule"
	"github.com/pawdesk/go-vet-backend/internal/services"
	"github.com/pawdesk/go-vet-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AppointmentService defines the booking lifecycle operations consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AppointmentService interface {
	// Create books an appointment; a non-nil second return is the conflicting
	// appointment found by the advisory check.
	Create(ctx context.Context, tenantID, userID string, in services.BookingInput) (*domain.Appointment, *domain.Appointment, error)
	// CheckConflict probes a candidate slot without booking.
	CheckConflict(ctx context.Context, tenantID string, cand schedule.Candidate) (*domain.Appointment, error)
	// Get fetches one appointment with its derived effective status.
	Get(ctx context.Context, tenantID, id string) (*domain.Appointment, error)
	// ListPage returns a page of appointments and the total count.
	ListPage(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Appointment, int64, error)
	// Approve / Complete / Cancel apply explicit status actions.
	Approve(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error)
	Complete(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error)
}

//
// DTOs
//

// CreateAppointmentRequest is the JSON payload for booking an appointment.
//
// ScheduledAt accepts several formats (RFC 3339, "2006-01-02 15:04",
// "2006-01-02" plus a separate Time field, or epoch seconds/millis as a
// string). When Date and Time are both set they are combined.
type CreateAppointmentRequest struct {
	CustomerID    string `json:"customer_id" example:"cust-42"`
	CustomerName  string `json:"customer_name" binding:"required" example:"Jane Doe"`
	CustomerEmail string `json:"customer_email" example:"jane@example.com"`
	PetName       string `json:"pet_name" binding:"required" example:"rex"`
	Veterinarian  string `json:"veterinarian" binding:"required" example:"Dr. Smith"`
	ScheduledAt   string `json:"scheduled_at" example:"2026-09-03T10:30:00Z"`
	Date          string `json:"date" example:"2026-09-03"`
	Time          string `json:"time" example:"10:30"`
	Reason        string `json:"reason" example:"annual vaccination"`
	Notes         string `json:"notes"`
	// Force books the slot even when the advisory conflict check reports a
	// collision.
	Force bool `json:"force"`
}

// AppointmentResponse wraps an appointment together with the conflicting
// appointment (if any) found during booking.
type AppointmentResponse struct {
	Appointment *domain.Appointment `json:"appointment"`
	Conflict    *domain.Appointment `json:"conflict,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListAppointmentsResponse wraps a page of appointments and pagination
// information.
type ListAppointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Pagination   Pagination           `json:"pagination"`
}

// ConflictProbeResponse reports the outcome of the advisory slot check.
type ConflictProbeResponse struct {
	Conflict bool                `json:"conflict"`
	With     *domain.Appointment `json:"with,omitempty"`
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for appointments and notifications.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	apptSvc  AppointmentService
	notifSvc NotificationService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(apptSvc AppointmentService, notifSvc NotificationService) *Handlers {
	return &Handlers{apptSvc: apptSvc, notifSvc: notifSvc}
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	if page = utils.AtoiDefault(c.Query("page"), defaultPage); page < 1 {
		page = defaultPage
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// CreateAppointment godoc
// @ID          createAppointment
// @Summary     Book a new appointment
// @Description Books an appointment for the tenant; returns 409 with the conflicting appointment when the slot is taken and force is false.
// @Tags        Appointments
// @Accept      json
// @Produce     json
//
// @Param       X-User-Email  header  string  false "Operator e-mail (tenant derives from the local part)"  example(frontdesk@happypaws.example)
// @Param       X-Tenant-ID   header  string  false "Explicit tenant override"                               example(happypaws)
// @Param       body          body    handlers.CreateAppointmentRequest  true  "Booking payload"
//
// @Success     201  {object}  handlers.AppointmentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Slot conflict"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /appointments [post]
func (h *Handlers) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	in := services.BookingInput{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PetName:       req.PetName,
		Veterinarian:  req.Veterinarian,
		Reason:        req.Reason,
		Notes:         req.Notes,
		Force:         req.Force,
	}

	switch {
	case strings.TrimSpace(req.ScheduledAt) != "":
		t, err := clock.ParseInstant(req.ScheduledAt)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scheduled_at is not a recognized instant")
			return
		}
		in.ScheduledAt = t
	case strings.TrimSpace(req.Date) != "":
		t, err := clock.CombineDateTime(req.Date, req.Time)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date/time is not a recognized instant")
			return
		}
		in.ScheduledAt = t
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scheduled_at or date is required")
		return
	}

	a, conflict, err := h.apptSvc.Create(c.Request.Context(), middleware.TenantFrom(c), middleware.UserFrom(c), in)
	switch {
	case errors.Is(err, services.ErrSlotConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       ErrCodeSlotConflict,
			"message":    "the veterinarian already has an appointment in that slot",
			"conflict":   conflict,
		})
		return
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "customer_name, pet_name, veterinarian and a schedule instant are required")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	ok(c, http.StatusCreated, AppointmentResponse{Appointment: a, Conflict: conflict})
}

// ListAppointments godoc
// @ID          listAppointments
// @Summary     List appointments (paginated)
// @Description Returns a page of the tenant's appointments, each carrying its derived effective status.
// @Tags        Appointments
// @Produce     json
//
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListAppointmentsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments [get]
func (h *Handlers) ListAppointments(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.apptSvc.ListPage(c.Request.Context(), middleware.TenantFrom(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListAppointmentsResponse{
		Appointments: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetAppointment godoc
// @ID          getAppointment
// @Summary     Fetch one appointment
// @Description Returns a single appointment with its derived effective status.
// @Tags        Appointments
// @Produce     json
//
// @Param       id  path  string  true  "Appointment ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Appointment
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments/{id} [get]
func (h *Handlers) GetAppointment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "appointment id must be a UUID")
		return
	}

	a, err := h.apptSvc.Get(c.Request.Context(), middleware.TenantFrom(c), id)
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "appointment not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, a)
}

// CheckConflict godoc
// @ID          checkConflict
// @Summary     Probe a candidate slot
// @Description Runs the advisory conflict check for a veterinarian/instant pair without booking anything.
// @Tags        Appointments
// @Produce     json
//
// @Param       veterinarian  query  string  true  "Veterinarian name"      example(Dr. Smith)
// @Param       scheduled_at  query  string  true  "Candidate instant"      example(2026-09-03T10:30:00Z)
//
// @Success     200  {object} handlers.ConflictProbeResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments/conflict [get]
func (h *Handlers) CheckConflict(c *gin.Context) {
	vet := strings.TrimSpace(c.Query("veterinarian"))
	raw := strings.TrimSpace(c.Query("scheduled_at"))
	if vet == "" || raw == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "veterinarian and scheduled_at are required")
		return
	}
	t, err := clock.ParseInstant(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scheduled_at is not a recognized instant")
		return
	}

	conflict, err := h.apptSvc.CheckConflict(c.Request.Context(), middleware.TenantFrom(c), schedule.Candidate{
		ScheduledAt:  t,
		Veterinarian: vet,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ConflictProbeResponse{Conflict: conflict != nil, With: conflict})
}

// ApproveAppointment godoc
// @ID          approveAppointment
// @Summary     Approve a pending appointment
// @Tags        Appointments
// @Produce     json
// @Param       id  path  string  true  "Appointment ID (UUID)"  format(uuid)
// @Success     200  {object} domain.Appointment
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Status pinned"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments/{id}/approve [post]
func (h *Handlers) ApproveAppointment(c *gin.Context) {
	h.transition(c, h.apptSvc.Approve)
}

// CompleteAppointment godoc
// @ID          completeAppointment
// @Summary     Mark an appointment completed
// @Tags        Appointments
// @Produce     json
// @Param       id  path  string  true  "Appointment ID (UUID)"  format(uuid)
// @Success     200  {object} domain.Appointment
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Status pinned"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments/{id}/complete [post]
func (h *Handlers) CompleteAppointment(c *gin.Context) {
	h.transition(c, h.apptSvc.Complete)
}

// CancelAppointment godoc
// @ID          cancelAppointment
// @Summary     Cancel an appointment
// @Tags        Appointments
// @Produce     json
// @Param       id  path  string  true  "Appointment ID (UUID)"  format(uuid)
// @Success     200  {object} domain.Appointment
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Status pinned"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /appointments/{id}/cancel [post]
func (h *Handlers) CancelAppointment(c *gin.Context) {
	h.transition(c, h.apptSvc.Cancel)
}

// transition shares the id validation and error mapping of the three explicit
// status actions.
func (h *Handlers) transition(c *gin.Context, op func(ctx context.Context, tenantID, userID, id string) (*domain.Appointment, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "appointment id must be a UUID")
		return
	}

	a, err := op(c.Request.Context(), middleware.TenantFrom(c), middleware.UserFrom(c), id)
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "appointment not found")
		return
	case errors.Is(err, services.ErrStatusPinned):
		fail(c, http.StatusConflict, ErrCodeStatusPinned, "completed and cancelled appointments cannot change status")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, a)
}
