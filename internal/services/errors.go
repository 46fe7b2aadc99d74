// Package services defines the business logic for appointments, reminder
// dispatch, and the notification feed. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrAppointmentNotFound indicates that the requested appointment does
	// not exist within the caller's tenant.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotConflict is returned when a candidate booking collides with an
	// existing appointment for the same veterinarian, day, and minute. The
	// check is advisory; callers may retry with force to book anyway.
	ErrSlotConflict = errors.New("slot already booked for this veterinarian")

	// ErrInvalidInput is returned when a booking request is missing required
	// fields or carries an unusable scheduled instant.
	ErrInvalidInput = errors.New("invalid appointment input")

	// ErrStatusPinned is returned when a status-changing action targets an
	// appointment that is already completed or cancelled.
	ErrStatusPinned = errors.New("appointment status is final")
)
