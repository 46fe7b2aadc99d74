// Package services – NotificationService
//
// This file implements the read side of the notification feed and the
// operator-facing controls: listing the feed, unread counts, read marking,
// the manual dispatch trigger, and delivery statistics over the audit ledger.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawdesk/go-vet-backend/internal/domain"
	"github.com/pawdesk/go-vet-backend/internal/feed"
	"github.com/pawdesk/go-vet-backend/internal/repo"
)

// NotificationService exposes the in-app feed and the dispatch controls to
// the transport layer.
type NotificationService struct {
	DB       *gorm.DB
	FeedView *feed.Feed
	Dispatch *DispatchService
}

// Feed returns the user's notifications in display order (rank ascending,
// newest first within a rank).
func (s *NotificationService) Feed(tenantID, userID string) []domain.InAppNotification {
	return s.FeedView.List(tenantID, userID)
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(tenantID, userID string) int {
	return s.FeedView.Unread(tenantID, userID)
}

// MarkRead flags one notification as read in both the feed and the DB copy.
// It reports whether the notification existed in the feed.
func (s *NotificationService) MarkRead(ctx context.Context, tenantID, userID, id string) bool {
	found := s.FeedView.MarkRead(tenantID, userID, id)
	if found {
		// The DB copy is an audit mirror; a miss there is not user-visible.
		_ = repo.MarkNotificationRead(ctx, s.DB, tenantID, userID, id)
	}
	return found
}

// MarkAllRead flags every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, tenantID, userID string) error {
	s.FeedView.MarkAllRead(tenantID, userID)
	return repo.MarkAllNotificationsRead(ctx, s.DB, tenantID, userID)
}

// RunDispatch triggers one dispatch tick on demand, outside the worker
// cadence. Used by operators after bulk imports or to verify wiring.
func (s *NotificationService) RunDispatch(ctx context.Context, tenantID, asUserID string) error {
	return s.Dispatch.ProcessDueReminders(ctx, tenantID, asUserID)
}

// DeliveryStats aggregates reminder delivery outcomes for the tenant.
func (s *NotificationService) DeliveryStats(ctx context.Context, tenantID string) (repo.DeliveryStats, error) {
	return repo.CountDeliveryOutcomes(ctx, s.DB, tenantID)
}
