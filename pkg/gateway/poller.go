package gateway

import (
	"context"
	"fmt"
	"time"
)

// Poller watches an augmentation job until the backend reports completion.
// It replaces the recursive-timeout loop of the browser original with a
// ticker that can be cancelled (context or Stop), and it gives up after a
// run of consecutive failures instead of retrying forever.
type Poller struct {
	Interval    time.Duration // sample spacing, default 1s
	MaxFailures int           // consecutive failure ceiling, default 10

	client  *Client
	session string
	stop    chan struct{}
}

func NewPoller(client *Client, session string) *Poller {
	return &Poller{
		Interval:    time.Second,
		MaxFailures: 10,
		client:      client,
		session:     session,
		stop:        make(chan struct{}),
	}
}

// Stop cancels a running Run. Safe to call from another goroutine, eg a
// dialog close handler. Calling it twice panics, same as closing a channel
// twice; the UI guards with its in-progress flag.
func (p *Poller) Stop() {
	close(p.stop)
}

// Run polls until the job completes, the context is cancelled, Stop is
// called, or MaxFailures consecutive samples fail. onProgress, if set, is
// invoked for every successful sample, including the final one.
func (p *Poller) Run(ctx context.Context, onProgress func(Progress)) (Progress, error) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	failures := 0
	var lastErr error
	for {
		// sample first, wait after, so the caller sees progress as soon as
		// the job starts
		progress, err := p.client.AugmentationProgress(ctx, p.session)
		if err != nil {
			failures++
			lastErr = err
			p.client.Log.Warnf("Augmentation progress poll failed (%v/%v): %v", failures, p.MaxFailures, err)
			if failures >= p.MaxFailures {
				return Progress{}, fmt.Errorf("Augmentation progress unavailable after %v attempts: %w", failures, lastErr)
			}
		} else {
			failures = 0
			if onProgress != nil {
				onProgress(*progress)
			}
			if progress.Completed {
				return *progress, nil
			}
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return Progress{}, ctx.Err()
		case <-p.stop:
			return Progress{}, ErrPollerStopped
		}
	}
}

// ErrPollerStopped is returned by Run when Stop cancels the poll.
var ErrPollerStopped = fmt.Errorf("augmentation poll stopped")
