// internal/config/config.go
package config

type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
}

type TrackerConfig struct {
	Listen   string          `yaml:"listen"`
	Backend  BackendConfig   `yaml:"backend"`
	Sessions []SessionConfig `yaml:"sessions"`
	Rooms    []RoomConfig    `yaml:"rooms"`
}

// ---- BACKEND ----

type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	Token     string `yaml:"token"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- OPERATION SESSION POLLING ----

type SessionConfig struct {
	ID         int  `yaml:"id"`
	IntervalMs int  `yaml:"interval_ms"`
	MaxErrors  int  `yaml:"max_errors"`
	ForceScan  bool `yaml:"force_scan"` // request a live RFID read on every fetch
}

// ---- ROOM EQUIPMENT POLLING ----

type RoomConfig struct {
	ID            string `yaml:"id"`
	IntervalMs    int    `yaml:"interval_ms"`
	ScanDurationS int    `yaml:"scan_duration_s"`
	MaxErrors     int    `yaml:"max_errors"`
}
