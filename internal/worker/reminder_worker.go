// Package worker runs the periodic reminder dispatch loop. One worker serves
// one tenant session: it ticks on a fixed interval (the source application
// used 5 minutes), runs once eagerly at startup, and stops when its context
// is cancelled. In-flight work at cancellation is not forcibly interrupted
// beyond context propagation; its results simply land before shutdown
// completes or are retried on the next start.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInterval matches the source application's dispatch cadence.
const DefaultInterval = 5 * time.Minute

// Dispatcher is the orchestrator contract the worker drives.
type Dispatcher interface {
	ProcessDueReminders(ctx context.Context, tenantID, asUserID string) error
}

// ReminderWorker drives a Dispatcher on an interval for a fixed tenant/user.
type ReminderWorker struct {
	Dispatcher Dispatcher
	TenantID   string
	AsUserID   string

	// Interval between ticks; <=0 means DefaultInterval.
	Interval time.Duration
}

// Start blocks, ticking until ctx is cancelled. The first tick fires
// immediately so freshly started sessions do not wait a full interval for
// their reminders.
func (w *ReminderWorker) Start(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	log.Info().Str("tenant_id", w.TenantID).Dur("interval", interval).Msg("reminder worker started")

	w.tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("tenant_id", w.TenantID).Msg("reminder worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick runs one dispatch pass. A failed tick is logged and silently retried
// on the next interval; it is never surfaced to end users.
func (w *ReminderWorker) tick(ctx context.Context) {
	if err := w.Dispatcher.ProcessDueReminders(ctx, w.TenantID, w.AsUserID); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Str("tenant_id", w.TenantID).Msg("reminder dispatch tick failed")
	}
}
