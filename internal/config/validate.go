// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

// MinIntervalMs is the shortest allowed polling interval.
// Anything faster hammers the backend's RFID scan path for no benefit.
const MinIntervalMs = 1000

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	t := cfg.Tracker

	// ------------------------------------------------------------
	// BACKEND
	// ------------------------------------------------------------

	if t.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}

	u, err := url.Parse(t.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url has no host")
	}

	if t.Backend.TimeoutMs < 0 {
		return fmt.Errorf("backend.timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// POLL SUBJECTS
	// ------------------------------------------------------------

	if len(t.Sessions) == 0 && len(t.Rooms) == 0 {
		return fmt.Errorf("at least one session or room must be configured")
	}

	sessionIDs := make(map[int]struct{})
	for _, s := range t.Sessions {
		if s.ID <= 0 {
			return fmt.Errorf("session id must be a positive integer, got %d", s.ID)
		}
		if _, dup := sessionIDs[s.ID]; dup {
			return fmt.Errorf("duplicate session id %d", s.ID)
		}
		sessionIDs[s.ID] = struct{}{}

		if err := validateInterval("session", fmt.Sprint(s.ID), s.IntervalMs); err != nil {
			return err
		}
		if s.MaxErrors < 0 {
			return fmt.Errorf("session %d: max_errors must not be negative", s.ID)
		}
	}

	roomIDs := make(map[string]struct{})
	for _, r := range t.Rooms {
		if r.ID == "" {
			return fmt.Errorf("room id is required")
		}
		if _, dup := roomIDs[r.ID]; dup {
			return fmt.Errorf("duplicate room id %q", r.ID)
		}
		roomIDs[r.ID] = struct{}{}

		if err := validateInterval("room", r.ID, r.IntervalMs); err != nil {
			return err
		}
		if r.ScanDurationS < 0 {
			return fmt.Errorf("room %q: scan_duration_s must not be negative", r.ID)
		}
		if r.MaxErrors < 0 {
			return fmt.Errorf("room %q: max_errors must not be negative", r.ID)
		}
	}

	return nil
}

// Zero means "use the default"; explicit values must respect the floor.
func validateInterval(kind, id string, ms int) error {
	if ms == 0 {
		return nil
	}
	if ms < MinIntervalMs {
		return fmt.Errorf("%s %s: interval_ms must be >= %d, got %d", kind, id, MinIntervalMs, ms)
	}
	return nil
}
