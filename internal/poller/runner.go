// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// run is the session loop: one immediate fetch, then ticker-driven
// fetches until the context is cancelled or the budget is exhausted.
// All fetching and emission happens on this goroutine, so there is
// never more than one fetch in flight per session.
func (p *Poller[T]) run(ctx context.Context) {
	if p.fetchOnce(ctx, p.cfg.ForceScan) {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.fetchOnce(ctx, p.cfg.ForceScan) {
				return
			}
		case <-p.forceCh:
			if p.fetchOnce(ctx, true) {
				return
			}
		}
	}
}

// fetchOnce performs one fetch attempt and emits exactly one event for
// it, unless the session was stopped or restarted while the fetch was
// in flight — then the result is discarded. Returns true when the
// error budget is exhausted and the loop must exit.
func (p *Poller[T]) fetchOnce(ctx context.Context, forceScan bool) (exhausted bool) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	snap, err := p.fetch.Fetch(fctx, forceScan)
	cancel()

	p.mu.Lock()

	// A result landing after Stop() must not resurrect the session,
	// and a result belonging to a cancelled loop must not leak into a
	// restarted one.
	if !p.running || ctx.Err() != nil {
		p.mu.Unlock()
		return false
	}

	// Out-of-order guard: never overwrite a later snapshot with a stale one.
	if seq <= p.lastApplied {
		p.mu.Unlock()
		return false
	}
	p.lastApplied = seq

	var ev Event[T]
	now := time.Now()

	if err != nil {
		stop, count := p.budget.record(false)
		ev = Event[T]{
			Subject: p.cfg.Subject,
			Seq:     seq,
			At:      now,
			Err: &ErrorEvent{
				Message:    "status fetch failed",
				Details:    err.Error(),
				Retrying:   !stop,
				ErrorCount: count,
				MaxErrors:  p.cfg.MaxErrors,
				Err:        err,
			},
		}
		if stop {
			p.running = false
			if p.cancel != nil {
				p.cancel()
				p.cancel = nil
			}
			exhausted = true
		}
	} else {
		p.budget.record(true)
		p.lastUpdate = now
		ev = Event[T]{
			Subject:  p.cfg.Subject,
			Seq:      seq,
			At:       now,
			Snapshot: &snap,
		}
	}

	p.lastEvent = &ev
	callbacks := p.callbacks
	p.mu.Unlock()

	// Emission happens outside the lock but still on the loop
	// goroutine, so subscribers see events in fetch-completion order.
	for _, fn := range callbacks {
		fn(ev)
	}

	return exhausted
}
