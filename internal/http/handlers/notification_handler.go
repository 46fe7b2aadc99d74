// Notification HTTP handlers.
//
// This file exposes REST endpoints for the in-app notification feed and the
// reminder dispatch controls:
//   - GET    /notifications                (feed in display order + unread count)
//   - POST   /notifications/{id}/read      (mark one read)
//   - POST   /notifications/read-all       (mark all read)
//   - POST   /reminders/run               (manual dispatch tick)
//   - GET    /reminders/stats             (delivery outcome totals)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawdesk/go-vet-backend/internal/domain"
	"github.com/pawdesk/go-vet-backend/internal/http/middleware"
	"github.com/pawdesk/go-vet-backend/internal/repo"
)

// NotificationService defines the feed and dispatch-control operations
// consumed by HTTP handlers.
type NotificationService interface {
	// Feed returns the user's notifications in display order.
	Feed(tenantID, userID string) []domain.InAppNotification
	// UnreadCount returns the user's unread total.
	UnreadCount(tenantID, userID string) int
	// MarkRead flags one notification read; reports whether it existed.
	MarkRead(ctx context.Context, tenantID, userID, id string) bool
	// MarkAllRead flags every notification of the user as read.
	MarkAllRead(ctx context.Context, tenantID, userID string) error
	// RunDispatch triggers one reminder dispatch tick on demand.
	RunDispatch(ctx context.Context, tenantID, asUserID string) error
	// DeliveryStats aggregates reminder delivery outcomes.
	DeliveryStats(ctx context.Context, tenantID string) (repo.DeliveryStats, error)
}

// FeedResponse wraps the user's notification feed.
type FeedResponse struct {
	Notifications []domain.InAppNotification `json:"notifications"`
	Unread        int                        `json:"unread"`
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     Fetch the in-app notification feed
// @Description Returns the caller's notifications sorted by category priority (overdue first) and recency, plus the unread count.
// @Tags        Notifications
// @Produce     json
// @Success     200  {object} handlers.FeedResponse
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	tid, uid := middleware.TenantFrom(c), middleware.UserFrom(c)
	ok(c, http.StatusOK, FeedResponse{
		Notifications: h.notifSvc.Feed(tid, uid),
		Unread:        h.notifSvc.UnreadCount(tid, uid),
	})
}

// MarkNotificationRead godoc
// @ID          markNotificationRead
// @Summary     Mark one notification as read
// @Tags        Notifications
// @Produce     json
// @Param       id  path  string  true  "Notification ID"
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /notifications/{id}/read [post]
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	tid, uid := middleware.TenantFrom(c), middleware.UserFrom(c)
	if !h.notifSvc.MarkRead(c.Request.Context(), tid, uid, c.Param("id")) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "notification not found")
		return
	}
	noContent(c)
}

// MarkAllNotificationsRead godoc
// @ID          markAllNotificationsRead
// @Summary     Mark every notification as read
// @Tags        Notifications
// @Produce     json
// @Success     204  {string} string "No Content"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/read-all [post]
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	tid, uid := middleware.TenantFrom(c), middleware.UserFrom(c)
	if err := h.notifSvc.MarkAllRead(c.Request.Context(), tid, uid); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// RunReminderDispatch godoc
// @ID          runReminderDispatch
// @Summary     Trigger one reminder dispatch tick
// @Description Runs the dispatch pass immediately instead of waiting for the worker interval. Idempotent per (appointment, reminder type).
// @Tags        Reminders
// @Produce     json
// @Success     204  {string} string "No Content"
// @Failure     500  {object} handlers.ErrorResponse "Dispatch failed"
// @Router      /reminders/run [post]
func (h *Handlers) RunReminderDispatch(c *gin.Context) {
	tid, uid := middleware.TenantFrom(c), middleware.UserFrom(c)
	if err := h.notifSvc.RunDispatch(c.Request.Context(), tid, uid); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeDispatchFailed, err.Error())
		return
	}
	noContent(c)
}

// ReminderStats godoc
// @ID          reminderStats
// @Summary     Reminder delivery statistics
// @Description Returns per-status totals (pending/sent/failed) over the tenant's reminder audit ledger.
// @Tags        Reminders
// @Produce     json
// @Success     200  {object} repo.DeliveryStats
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reminders/stats [get]
func (h *Handlers) ReminderStats(c *gin.Context) {
	stats, err := h.notifSvc.DeliveryStats(c.Request.Context(), middleware.TenantFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
