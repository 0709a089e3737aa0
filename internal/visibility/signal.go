// internal/visibility/signal.go
package visibility

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Signal delivers foreground/background transitions of the host
// environment. Each poll session subscribes individually so one
// session's pause never affects another's.
type Signal interface {
	// Subscribe registers a callback and returns its unsubscribe func.
	// Callbacks receive true for foreground, false for background.
	Subscribe(fn func(visible bool)) (unsubscribe func())
}

// ManualSignal is a Signal driven by explicit Set calls. Embedders
// wire it to whatever foreground notion their host has; tests drive
// it directly.
type ManualSignal struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]func(bool)
	visible bool
}

func NewManualSignal() *ManualSignal {
	return &ManualSignal{
		subs:    map[int]func(bool){},
		visible: true,
	}
}

// Set broadcasts a visibility transition. Repeated sets of the same
// state are not re-broadcast.
func (s *ManualSignal) Set(visible bool) {
	s.mu.Lock()
	if s.visible == visible {
		s.mu.Unlock()
		return
	}
	s.visible = visible
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(visible)
	}
}

func (s *ManualSignal) Subscribe(fn func(visible bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// OSSignal maps process signals onto visibility for the daemon:
// SIGUSR1 backgrounds every session, SIGUSR2 foregrounds them.
// Kiosk supervisors send these when the display goes dark.
type OSSignal struct {
	*ManualSignal
	ch   chan os.Signal
	done chan struct{}
}

func NewOSSignal() *OSSignal {
	s := &OSSignal{
		ManualSignal: NewManualSignal(),
		ch:           make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}

	signal.Notify(s.ch, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		for {
			select {
			case sig := <-s.ch:
				s.Set(sig == syscall.SIGUSR2)
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// Close stops listening for process signals.
func (s *OSSignal) Close() {
	signal.Stop(s.ch)
	close(s.done)
}
