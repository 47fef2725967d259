package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopnext/backend/internal/mail"
	"github.com/shopnext/backend/internal/repo"
)

const (
	DefaultInterval    = 15 * time.Second
	DefaultBatchSize   = 50
	DefaultMaxAttempts = 5
)

// Dispatcher drains queued notifications to the mail channel. Delivery is
// at-least-once: a message is retried until it sends or exhausts its
// attempts, and a crash between send and MarkSent means one duplicate
// mail, never a lost one.
type Dispatcher struct {
	Repo        *repo.GormRepo
	Notifier    mail.Notifier
	Log         *slog.Logger
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

func (d *Dispatcher) interval() time.Duration {
	if d.Interval > 0 {
		return d.Interval
	}
	return DefaultInterval
}

func (d *Dispatcher) batchSize() int {
	if d.BatchSize > 0 {
		return d.BatchSize
	}
	return DefaultBatchSize
}

func (d *Dispatcher) maxAttempts() int {
	if d.MaxAttempts > 0 {
		return d.MaxAttempts
	}
	return DefaultMaxAttempts
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	t := time.NewTicker(d.interval())
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.DrainOnce(ctx)
		}
	}
}

// DrainOnce processes one batch of pending messages.
func (d *Dispatcher) DrainOnce(ctx context.Context) {
	msgs, err := d.Repo.PendingOutbox(ctx, d.maxAttempts(), d.batchSize())
	if err != nil {
		d.Log.Error("outbox fetch failed", "error", err)
		return
	}

	for _, msg := range msgs {
		if err := d.Notifier.Send(msg.Recipient, msg.Subject, msg.Body); err != nil {
			d.Log.Error("notification failed", "outbox_id", msg.ID, "kind", msg.Kind, "attempts", msg.Attempts+1, "error", err)
			if err := d.Repo.MarkOutboxFailed(ctx, msg.ID, err.Error()); err != nil {
				d.Log.Error("outbox mark failed error", "outbox_id", msg.ID, "error", err)
			}
			continue
		}

		if err := d.Repo.MarkOutboxSent(ctx, msg.ID); err != nil {
			d.Log.Error("outbox mark sent error", "outbox_id", msg.ID, "error", err)
			continue
		}
		d.Log.Info("notification sent", "outbox_id", msg.ID, "kind", msg.Kind, "recipient", msg.Recipient)
	}
}
