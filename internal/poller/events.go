// internal/poller/events.go
package poller

import (
	"context"
	"time"
)

// Fetcher performs exactly one status fetch for a poll subject.
// forceScan asks the backend for a live hardware read instead of
// cached state. Implementations return a value or an error, never both.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, forceScan bool) (T, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, forceScan bool) (T, error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, forceScan bool) (T, error) {
	return f(ctx, forceScan)
}

// ErrorEvent is emitted instead of a snapshot when a fetch fails.
// Retrying is false exactly once per session: on the terminal event
// that accompanies error-budget exhaustion.
type ErrorEvent struct {
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Retrying   bool   `json:"retrying"`
	ErrorCount int    `json:"error_count"`
	MaxErrors  int    `json:"max_errors"`

	Err error `json:"-"` // underlying cause, for errors.As at call sites
}

// Event is the tagged union delivered to subscribers: exactly one of
// Snapshot or Err is set per fetch attempt, never both, never neither.
type Event[T any] struct {
	Subject  string      `json:"subject"`
	Seq      uint64      `json:"seq"`
	Snapshot *T          `json:"snapshot,omitempty"`
	Err      *ErrorEvent `json:"error,omitempty"`
	At       time.Time   `json:"at"`
}
