// internal/visibility/controller_test.go
package visibility

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/surgisync/ortrack/internal/poller"
)

// ---- fake scheduler ----

type fakeScheduler struct {
	mu      sync.Mutex
	running bool
	stops   int
	resumes int
}

func (f *fakeScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.stops++
}

func (f *fakeScheduler) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	f.resumes++
}

func (f *fakeScheduler) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// ---- tests ----

func TestController_HiddenStopsVisibleResumes(t *testing.T) {
	sig := NewManualSignal()
	sched := &fakeScheduler{running: true}
	c := NewController(sig, sched)
	defer c.Close()

	sig.Set(false)
	if sched.Running() {
		t.Fatalf("scheduler should be stopped while hidden")
	}

	sig.Set(true)
	if !sched.Running() {
		t.Fatalf("scheduler should resume on foreground")
	}
	if sched.resumes != 1 {
		t.Fatalf("expected exactly one resume, got %d", sched.resumes)
	}
}

func TestController_NoResumeIfNotRunningWhenHidden(t *testing.T) {
	sig := NewManualSignal()
	sched := &fakeScheduler{running: false}
	c := NewController(sig, sched)
	defer c.Close()

	sig.Set(false)
	sig.Set(true)

	if sched.resumes != 0 {
		t.Fatalf("a session stopped before hiding must stay stopped, resumes=%d", sched.resumes)
	}
}

func TestController_CloseUnsubscribes(t *testing.T) {
	sig := NewManualSignal()
	sched := &fakeScheduler{running: true}
	c := NewController(sig, sched)

	c.Close()
	sig.Set(false)

	if sched.stops != 0 {
		t.Fatalf("closed controller must not act, stops=%d", sched.stops)
	}
}

func TestController_PerSessionIsolation(t *testing.T) {
	sig := NewManualSignal()
	a := &fakeScheduler{running: true}
	b := &fakeScheduler{running: true}

	ca := NewController(sig, a)
	defer ca.Close()
	cb := NewController(sig, b)
	cb.Close() // b's session tore down; only a should react

	sig.Set(false)

	if a.Running() {
		t.Fatalf("a should be paused")
	}
	if b.stops != 0 {
		t.Fatalf("b's closed controller must not touch it")
	}
}

// countingFetcher counts fetches for the end-to-end pause/resume scenario.
type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) Fetch(context.Context, bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "ok", nil
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Scenario: interval 5s, hidden at ~1s, visible later. Exactly one
// fetch (the initial one) happens before hiding, and foregrounding
// triggers a new immediate fetch.
func TestController_PauseResumeWithRealPoller(t *testing.T) {
	f := &countingFetcher{}
	p, err := poller.New[string](poller.Config{
		Subject:  "session-7",
		Interval: 5 * time.Second,
	}, f)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	defer p.Stop()

	sig := NewManualSignal()
	c := NewController(sig, p)
	defer c.Close()

	p.Start()
	time.Sleep(200 * time.Millisecond) // initial fetch lands

	sig.Set(false)
	time.Sleep(500 * time.Millisecond)

	if got := f.callCount(); got != 1 {
		t.Fatalf("expected exactly the initial fetch during hidden period, got %d", got)
	}
	if p.Running() {
		t.Fatalf("poller should be paused while hidden")
	}

	sig.Set(true)
	time.Sleep(500 * time.Millisecond)

	if got := f.callCount(); got != 2 {
		t.Fatalf("foregrounding should fetch immediately, got %d fetches", got)
	}
	if !p.Running() {
		t.Fatalf("poller should be running after foreground")
	}
}
