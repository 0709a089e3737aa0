// internal/serve/routes.go
package serve

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server HTTP timeouts. The snapshot API serves pre-marshaled bytes
// and should answer quickly.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// ErrorResponse mirrors the backend's error shape so dashboard code
// handles both APIs uniformly.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Router builds the snapshot API.
func Router(store *Store, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/subjects", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, store.List())
	})

	r.Get("/api/sessions/{id}/snapshot", latestHandler(store, "session-"))
	r.Get("/api/rooms/{id}/snapshot", latestHandler(store, "room-"))

	r.Get("/api/feed", hub.ServeHTTP)

	return r
}

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

func latestHandler(store *Store, prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := prefix + chi.URLParam(r, "id")

		raw, ok := store.Latest(subject)
		if !ok {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no snapshot yet for " + subject})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
