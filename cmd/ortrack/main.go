// cmd/ortrack/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surgisync/ortrack/internal/api"
	"github.com/surgisync/ortrack/internal/config"
	"github.com/surgisync/ortrack/internal/logging"
	"github.com/surgisync/ortrack/internal/poller"
	"github.com/surgisync/ortrack/internal/reconcile"
	"github.com/surgisync/ortrack/internal/serve"
	"github.com/surgisync/ortrack/internal/visibility"
)

func main() {
	log := logging.NewLogger("main")

	if len(os.Args) < 2 {
		log.Fatal("usage: ortrack <config.yaml>")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		log.WithError(err).Fatal("config validation failed")
	}
	config.Normalize(cfg)

	tracker := cfg.Tracker

	client, err := api.New(api.Config{
		BaseURL: tracker.Backend.BaseURL,
		Token:   tracker.Backend.Token,
		Timeout: time.Duration(tracker.Backend.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.WithError(err).Fatal("api client build failed")
	}

	store := serve.NewStore()
	hub := serve.NewHub()

	// SIGUSR1 backgrounds all sessions, SIGUSR2 foregrounds them.
	vis := visibility.NewOSSignal()
	defer vis.Close()

	var teardowns []func()

	// --------------------
	// Build per-subject pipelines
	// --------------------

	fetchTimeout := time.Duration(tracker.Backend.TimeoutMs) * time.Millisecond

	for _, s := range tracker.Sessions {
		sessionID := s.ID
		subject := fmt.Sprintf("session-%d", sessionID)

		fetch := poller.FetcherFunc[reconcile.Snapshot](
			func(ctx context.Context, forceScan bool) (reconcile.Snapshot, error) {
				raw, err := client.VerificationStatus(ctx, sessionID, forceScan)
				if err != nil {
					return reconcile.Snapshot{}, err
				}
				return reconcile.Normalize(raw), nil
			})

		p, err := poller.New[reconcile.Snapshot](poller.Config{
			Subject:   subject,
			Interval:  time.Duration(s.IntervalMs) * time.Millisecond,
			MaxErrors: s.MaxErrors,
			Timeout:   fetchTimeout,
			ForceScan: s.ForceScan,
		}, fetch)
		if err != nil {
			log.WithError(err).Fatalf("poller build failed (subject=%s)", subject)
		}

		store.Register("session", p)
		wireEvents(p, store, hub, log)

		ctrl := visibility.NewController(vis, p)
		p.Start()

		teardowns = append(teardowns, func() {
			ctrl.Close()
			p.Stop()
		})

		log.WithField("subject", subject).
			WithField("interval_ms", s.IntervalMs).
			Info("verification polling started")
	}

	for _, r := range tracker.Rooms {
		roomID := r.ID
		scanDuration := r.ScanDurationS
		subject := "room-" + roomID

		// The scan endpoint always performs a live read; the force
		// flag carries no extra meaning for rooms.
		fetch := poller.FetcherFunc[reconcile.RoomSnapshot](
			func(ctx context.Context, _ bool) (reconcile.RoomSnapshot, error) {
				raw, err := client.ScanRoom(ctx, roomID, scanDuration)
				if err != nil {
					return reconcile.RoomSnapshot{}, err
				}
				return reconcile.NormalizeRoomScan(roomID, raw), nil
			})

		p, err := poller.New[reconcile.RoomSnapshot](poller.Config{
			Subject:   subject,
			Interval:  time.Duration(r.IntervalMs) * time.Millisecond,
			MaxErrors: r.MaxErrors,
			Timeout:   fetchTimeout,
		}, fetch)
		if err != nil {
			log.WithError(err).Fatalf("poller build failed (subject=%s)", subject)
		}

		store.Register("room", p)
		wireEvents(p, store, hub, log)

		ctrl := visibility.NewController(vis, p)
		p.Start()

		teardowns = append(teardowns, func() {
			ctrl.Close()
			p.Stop()
		})

		log.WithField("subject", subject).
			WithField("interval_ms", r.IntervalMs).
			Info("room equipment polling started")
	}

	// --------------------
	// Snapshot API
	// --------------------

	srv := serve.NewServer(tracker.Listen, serve.Router(store, hub))
	go func() {
		log.WithField("addr", tracker.Listen).Info("snapshot api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("snapshot api failed")
		}
	}()

	// --------------------
	// Block until shutdown
	// --------------------

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")

	for _, stop := range teardowns {
		stop()
	}
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("snapshot api shutdown dirty")
	}
}

// wireEvents routes every poll event into the snapshot store, the live
// feed, and the log.
func wireEvents[T any](p *poller.Poller[T], store *serve.Store, hub *serve.Hub, log *logrus.Entry) {
	p.OnUpdate(func(ev poller.Event[T]) {
		raw, err := store.Record(ev.Subject, ev)
		if err != nil {
			log.WithError(err).WithField("subject", ev.Subject).Error("event encode failed")
			return
		}
		hub.Broadcast(raw)

		if ev.Err == nil {
			return
		}

		entry := log.WithField("subject", ev.Subject).
			WithField("error_count", ev.Err.ErrorCount).
			WithField("details", ev.Err.Details)
		if ev.Err.Retrying {
			entry.Warn("status fetch failed, will retry")
		} else {
			entry.Error("error budget exhausted, polling stopped")
		}
	})
}
