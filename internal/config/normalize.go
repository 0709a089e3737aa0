// internal/config/normalize.go
package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultListen        = ":8700"
	DefaultIntervalMs    = 5000
	DefaultMaxErrors     = 3
	DefaultTimeoutMs     = 30000
	DefaultScanDurationS = 3
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Tracker

	if t.Listen == "" {
		t.Listen = DefaultListen
	}

	// Trailing slashes break path joining downstream.
	t.Backend.BaseURL = strings.TrimRight(t.Backend.BaseURL, "/")

	if t.Backend.TimeoutMs == 0 {
		t.Backend.TimeoutMs = DefaultTimeoutMs
	}

	for i := range t.Sessions {
		s := &t.Sessions[i]
		if s.IntervalMs == 0 {
			s.IntervalMs = DefaultIntervalMs
		}
		if s.MaxErrors == 0 {
			s.MaxErrors = DefaultMaxErrors
		}
	}

	for i := range t.Rooms {
		r := &t.Rooms[i]
		if r.IntervalMs == 0 {
			r.IntervalMs = DefaultIntervalMs
		}
		if r.ScanDurationS == 0 {
			r.ScanDurationS = DefaultScanDurationS
		}
		if r.MaxErrors == 0 {
			r.MaxErrors = DefaultMaxErrors
		}
	}
}
