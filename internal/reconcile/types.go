// internal/reconcile/types.go
package reconcile

import (
	"time"

	"github.com/surgisync/ortrack/internal/api"
)

// Verification states. The backend historically reported "valid" for a
// fully reconciled session; ParseState folds that into StateComplete.

type State string

const (
	// StateComplete means every required item was detected.
	StateComplete State = "complete"

	// StateIncomplete means at least one required item is missing.
	StateIncomplete State = "incomplete"

	// StateFailed means the backend could not perform the verification.
	StateFailed State = "failed"
)

// ParseState maps a raw backend state string onto the State enum.
// Unknown values are treated as failed rather than guessed at.
func ParseState(raw string) State {
	switch raw {
	case "complete", "valid":
		return StateComplete
	case "incomplete":
		return StateIncomplete
	default:
		return StateFailed
	}
}

// ItemType distinguishes the two trackable item kinds.
type ItemType string

const (
	TypeInstrument ItemType = "instrument"
	TypeTray       ItemType = "tray"
)

// Item is one normalized entry of a view bucket.
type Item struct {
	Name     string   `json:"name"`
	Type     ItemType `json:"type"`
	Quantity int      `json:"quantity"`
	IDs      []int    `json:"ids,omitempty"`
}

// Snapshot is the normalized result of one successful verification fetch.
// It is produced whole and never mutated in place; subscribers always
// see a consistent value.
type Snapshot struct {
	VerificationID int       `json:"verification_id"`
	State          State     `json:"state"`
	Used           []Item    `json:"used"`
	Missing        []Item    `json:"missing"`
	Extra          []Item    `json:"extra"`
	Available      []Item    `json:"available"`
	Required       []Item    `json:"required"`
	LastUpdated    time.Time `json:"last_updated"`
}

// IsItemMissing reports whether an item should be shown as missing.
// Presence in Used always wins: an item is never simultaneously
// present and missing.
func (s Snapshot) IsItemMissing(name string) bool {
	for _, it := range s.Used {
		if it.Name == name {
			return false
		}
	}
	for _, it := range s.Missing {
		if it.Name == name {
			return true
		}
	}
	return false
}

// RoomSnapshot is the normalized result of one room equipment scan.
type RoomSnapshot struct {
	RoomID     string          `json:"room_id"`
	State      State           `json:"state"`
	InRoom     []api.Equipment `json:"in_room"`
	Unexpected []api.Equipment `json:"unexpected"`
	Missing    []api.Equipment `json:"missing"`
}
