package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chatme-bot/chatme/store"
)

// Notification stages, measured backwards from the trigger. A reminder at
// stage N has already been notified for stages 0..N-1. stageDone marks a
// reminder whose final notice went out.
var stageOffsets = []time.Duration{
	48 * time.Hour,
	24 * time.Hour,
	12 * time.Hour,
	2 * time.Hour,
}

const stageDone = 5

// stageTolerance is how far either side of a stage instant still counts as
// that stage. Wide enough that a tick every minute cannot skip a window.
const stageTolerance = 12 * time.Minute

// Dispatcher periodically scans for reminders whose next notification
// stage has arrived and pushes the notice out through the channel registry.
type Dispatcher struct {
	store    *store.Store
	channels *ChannelRegistry
	interval time.Duration
	now      func() time.Time

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher scanning at the given interval.
func NewDispatcher(st *store.Store, channels *ChannelRegistry, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Dispatcher{
		store:    st,
		channels: channels,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		logger:   slog.Default(),
	}
}

// WithClock fixes the dispatcher clock.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Start begins the dispatch loop.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = true
	d.stopCh = make(chan struct{})
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run(ctx)

	d.logger.Info("reminder dispatcher started", "interval", d.interval)
	return nil
}

// Stop gracefully stops the dispatcher.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.stopCh)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("reminder dispatcher stopped")
}

// IsRunning reports whether the dispatch loop is active.
func (d *Dispatcher) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	// First scan right away so a restart never waits a full interval.
	if _, err := d.RunOnce(ctx); err != nil {
		d.logger.Error("dispatch cycle failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil {
				d.logger.Error("dispatch cycle failed", "error", err)
			}
		}
	}
}

// RunOnce scans and dispatches a single cycle, returning how many notices
// were sent.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	now := d.now()

	// Nothing beyond the widest stage window can be due yet.
	horizon := now.Add(stageOffsets[0] + stageTolerance).Unix()
	maxStage := stageDone
	due, err := d.store.ListReminders(ctx, &store.FindReminder{
		TriggerBefore: &horizon,
		MaxStage:      &maxStage,
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, rem := range due {
		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}
		if d.dispatch(ctx, rem, now) {
			sent++
		}
	}
	return sent, nil
}

// dispatch advances one reminder through its stage cursor, sending at most
// one notice per cycle.
func (d *Dispatcher) dispatch(ctx context.Context, rem *store.Reminder, now time.Time) bool {
	trigger := time.Unix(rem.TriggerTs, 0)

	// Trigger time reached: send the final notice regardless of which
	// pre-stages fired, then retire the reminder.
	if !now.Before(trigger.Add(-stageTolerance)) {
		message := fmt.Sprintf("It's time: %s\n%s", rem.Readable, rem.Summary)
		if err := d.send(ctx, rem, message); err != nil {
			return false
		}
		d.advance(ctx, rem, stageDone)
		return true
	}

	// Otherwise look for the next pre-stage whose window contains now.
	for stage := rem.Stage; stage < len(stageOffsets); stage++ {
		at := trigger.Add(-stageOffsets[stage])
		if absDuration(now.Sub(at)) > stageTolerance {
			continue
		}
		message := fmt.Sprintf("Upcoming reminder in %s: %s\n%s",
			humanizeOffset(stageOffsets[stage]), rem.Readable, rem.Summary)
		if err := d.send(ctx, rem, message); err != nil {
			return false
		}
		d.advance(ctx, rem, stage+1)
		return true
	}
	return false
}

func (d *Dispatcher) send(ctx context.Context, rem *store.Reminder, message string) error {
	if err := d.channels.Send(ctx, rem.UserID, message); err != nil {
		d.logger.Error("failed to send reminder notice",
			"reminder_id", rem.ID, "user_id", rem.UserID, "error", err)
		return err
	}
	return nil
}

func (d *Dispatcher) advance(ctx context.Context, rem *store.Reminder, stage int) {
	if err := d.store.UpdateReminder(ctx, &store.UpdateReminder{ID: rem.ID, Stage: &stage}); err != nil {
		d.logger.Error("failed to advance reminder stage",
			"reminder_id", rem.ID, "stage", stage, "error", err)
		return
	}
	rem.Stage = stage
}

func humanizeOffset(d time.Duration) string {
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
