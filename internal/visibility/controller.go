// internal/visibility/controller.go
package visibility

import "sync"

// Scheduler is the slice of the poller surface the controller drives.
// Resume (not Start) is used on foreground so the error budget
// accumulated before the pause survives it.
type Scheduler interface {
	Stop()
	Resume()
	Running() bool
}

// Controller pauses one scheduler while the host is backgrounded and
// resumes it on foreground, but only if it was running when hidden.
// A session stopped for other reasons (budget exhaustion, explicit
// stop) stays stopped.
type Controller struct {
	sched Scheduler

	mu          sync.Mutex
	wasRunning  bool
	closed      bool
	unsubscribe func()
}

// NewController subscribes a scheduler to a visibility signal.
// Callers must Close the controller on teardown or the subscription
// leaks across navigations.
func NewController(sig Signal, sched Scheduler) *Controller {
	c := &Controller{sched: sched}
	c.unsubscribe = sig.Subscribe(c.onVisibility)
	return c
}

func (c *Controller) onVisibility(visible bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if !visible {
		c.wasRunning = c.sched.Running()
		c.mu.Unlock()
		c.sched.Stop()
		return
	}

	resume := c.wasRunning
	c.wasRunning = false
	c.mu.Unlock()

	if resume {
		c.sched.Resume()
	}
}

// Close unsubscribes from the visibility signal. Safe to call repeatedly.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.unsubscribe()
}
