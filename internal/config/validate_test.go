// internal/config/validate_test.go
package config

import "testing"

// helper to build a minimal valid config quickly
func base() *Config {
	return &Config{
		Tracker: TrackerConfig{
			Backend: BackendConfig{
				BaseURL: "http://or-backend.local:8000",
			},
			Sessions: []SessionConfig{
				{ID: 1, IntervalMs: 5000},
			},
		},
	}
}

// ---- tests ----

func TestValidate_MinimalValid(t *testing.T) {
	if err := Validate(base()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingBaseURL(t *testing.T) {
	cfg := base()
	cfg.Tracker.Backend.BaseURL = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected base_url error, got nil")
	}
}

func TestValidate_BadScheme(t *testing.T) {
	cfg := base()
	cfg.Tracker.Backend.BaseURL = "ftp://or-backend.local"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected scheme error, got nil")
	}
}

func TestValidate_NoSubjects(t *testing.T) {
	cfg := base()
	cfg.Tracker.Sessions = nil

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected subjects error, got nil")
	}
}

func TestValidate_DuplicateSessionID(t *testing.T) {
	cfg := base()
	cfg.Tracker.Sessions = append(cfg.Tracker.Sessions, SessionConfig{ID: 1})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate id error, got nil")
	}
}

func TestValidate_IntervalBelowFloor(t *testing.T) {
	cfg := base()
	cfg.Tracker.Sessions[0].IntervalMs = 500

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_ZeroIntervalMeansDefault(t *testing.T) {
	cfg := base()
	cfg.Tracker.Sessions[0].IntervalMs = 0

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DuplicateRoomID(t *testing.T) {
	cfg := base()
	cfg.Tracker.Rooms = []RoomConfig{
		{ID: "OR-3"},
		{ID: "OR-3"},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate room error, got nil")
	}
}

func TestValidate_NegativeScanDuration(t *testing.T) {
	cfg := base()
	cfg.Tracker.Rooms = []RoomConfig{
		{ID: "OR-3", ScanDurationS: -1},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected scan duration error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := base()
	cfg.Tracker.Backend.BaseURL = "http://or-backend.local:8000/"
	cfg.Tracker.Sessions[0].IntervalMs = 0
	cfg.Tracker.Rooms = []RoomConfig{{ID: "OR-3"}}

	Normalize(cfg)

	if cfg.Tracker.Listen != DefaultListen {
		t.Fatalf("listen default not applied, got %q", cfg.Tracker.Listen)
	}
	if cfg.Tracker.Backend.BaseURL != "http://or-backend.local:8000" {
		t.Fatalf("trailing slash not trimmed, got %q", cfg.Tracker.Backend.BaseURL)
	}
	if cfg.Tracker.Backend.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout default not applied, got %d", cfg.Tracker.Backend.TimeoutMs)
	}
	if cfg.Tracker.Sessions[0].IntervalMs != DefaultIntervalMs {
		t.Fatalf("interval default not applied, got %d", cfg.Tracker.Sessions[0].IntervalMs)
	}
	if cfg.Tracker.Sessions[0].MaxErrors != DefaultMaxErrors {
		t.Fatalf("max errors default not applied, got %d", cfg.Tracker.Sessions[0].MaxErrors)
	}
	if cfg.Tracker.Rooms[0].ScanDurationS != DefaultScanDurationS {
		t.Fatalf("scan duration default not applied, got %d", cfg.Tracker.Rooms[0].ScanDurationS)
	}
}
