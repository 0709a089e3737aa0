// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Defaults for optional Config fields.
const (
	DefaultMaxErrors = 3
	DefaultTimeout   = 30 * time.Second

	// MinInterval is the floor for the polling interval.
	MinInterval = time.Second
)

// Config is the immutable runtime config for one poll session.
type Config struct {
	// Subject identifies what is being tracked (operation session or room).
	Subject string

	// Interval is the time between automatic fetches. Must be >= MinInterval.
	Interval time.Duration

	// MaxErrors is the consecutive-failure budget before the session
	// stops itself. Zero means DefaultMaxErrors.
	MaxErrors int

	// Timeout bounds one fetch, independently of Interval, so a hung
	// request cannot block the next scheduled tick. Zero means DefaultTimeout.
	Timeout time.Duration

	// ForceScan requests a live hardware read on every scheduled tick,
	// not just on ForceUpdate.
	ForceScan bool
}

// Poller runs one recurring status-fetch lifecycle for a single subject.
// One run-loop goroutine per session; fetches never overlap, and events
// reach subscribers strictly in fetch-completion order.
type Poller[T any] struct {
	cfg   Config
	fetch Fetcher[T]

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	forceCh     chan struct{}
	budget      errorBudget
	seq         uint64
	lastApplied uint64
	lastUpdate  time.Time
	lastEvent   *Event[T]
	callbacks   []func(Event[T])
}

// New creates a poller with immutable config.
func New[T any](cfg Config, fetch Fetcher[T]) (*Poller[T], error) {
	if cfg.Subject == "" {
		return nil, errors.New("poller: subject required")
	}
	if cfg.Interval < MinInterval {
		return nil, errors.New("poller: interval must be >= 1s")
	}
	if fetch == nil {
		return nil, errors.New("poller: fetcher required")
	}
	if cfg.MaxErrors == 0 {
		cfg.MaxErrors = DefaultMaxErrors
	}
	if cfg.MaxErrors < 0 {
		return nil, errors.New("poller: max errors must be positive")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Poller[T]{
		cfg:     cfg,
		fetch:   fetch,
		budget:  errorBudget{max: cfg.MaxErrors},
		forceCh: make(chan struct{}, 1), // at most one queued forced fetch
	}, nil
}

// OnUpdate registers a subscriber. Must be called before Start.
// The callback runs on the session's run-loop goroutine.
func (p *Poller[T]) OnUpdate(fn func(Event[T])) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, fn)
}

// Start begins polling: one immediate fetch, then the repeating timer.
// If already running it restarts cleanly. The error budget is reset;
// this is the only way to reset it.
func (p *Poller[T]) Start() {
	p.Stop()

	p.mu.Lock()
	p.budget.reset()
	p.mu.Unlock()

	p.resume()
}

// Resume restarts a stopped session without touching the error budget.
// Used by the visibility controller so a backgrounded session neither
// earns a fresh budget nor is penalized for the pause. No-op if running.
func (p *Poller[T]) Resume() {
	p.resume()
}

// Stop cancels the timer. Safe to call repeatedly. An in-flight fetch
// is not waited for; its result is discarded rather than emitted.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	p.cancel()
	p.cancel = nil
}

// ForceUpdate queues one out-of-band fetch with a live hardware scan,
// without disturbing the timer schedule. At most one forced fetch can
// be pending; extra requests collapse into it. No-op when stopped.
func (p *Poller[T]) ForceUpdate() {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running {
		return
	}

	select {
	case p.forceCh <- struct{}{}:
	default:
	}
}

// Running reports whether the recurring timer is currently armed.
func (p *Poller[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// LastUpdateTime returns the time of the last successful fetch, or the
// zero time if none has succeeded yet.
func (p *Poller[T]) LastUpdateTime() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdate
}

// ErrorCount returns the current consecutive-failure count.
func (p *Poller[T]) ErrorCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.budget.count()
}

// LastEvent returns the most recently emitted event, or nil.
func (p *Poller[T]) LastEvent() *Event[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastEvent
}

// Subject returns the identifier this poller tracks.
func (p *Poller[T]) Subject() string {
	return p.cfg.Subject
}

func (p *Poller[T]) resume() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}

	// A force queued just before the previous stop must not leak into
	// this run.
	select {
	case <-p.forceCh:
	default:
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.running = true
	p.cancel = cancel
	p.mu.Unlock()

	go p.run(ctx)
}
