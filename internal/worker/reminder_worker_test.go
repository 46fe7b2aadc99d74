package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// countingDispatcher counts ticks and optionally fails every call.
type countingDispatcher struct {
	ticks atomic.Int64
	err   error
}

func (d *countingDispatcher) ProcessDueReminders(context.Context, string, string) error {
	d.ticks.Add(1)
	return d.err
}

func TestStart_FirstTickIsImmediate(t *testing.T) {
	d := &countingDispatcher{}
	w := &ReminderWorker{Dispatcher: d, TenantID: "t1", AsUserID: "system", Interval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for d.ticks.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no eager tick before the first interval")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
	// The hour-long interval cannot have fired; only the eager tick ran.
	if got := d.ticks.Load(); got != 1 {
		t.Fatalf("ticks = %d, want 1", got)
	}
}

func TestStart_TicksOnInterval(t *testing.T) {
	d := &countingDispatcher{}
	w := &ReminderWorker{Dispatcher: d, TenantID: "t1", AsUserID: "system", Interval: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for d.ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d ticks within deadline", d.ticks.Load())
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	cancel()
	<-done
}

func TestStart_KeepsTickingAfterFailures(t *testing.T) {
	d := &countingDispatcher{err: errors.New("storage down")}
	w := &ReminderWorker{Dispatcher: d, TenantID: "t1", AsUserID: "system", Interval: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for d.ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("failing dispatcher stopped the loop")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	cancel()
	<-done
}
