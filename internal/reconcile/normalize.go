// internal/reconcile/normalize.go
package reconcile

import (
	"sort"
	"time"

	"github.com/surgisync/ortrack/internal/api"
)

// Normalize converts a raw verification payload into typed view buckets.
// Pure function: same payload in, same snapshot out, including order.
func Normalize(raw *api.VerificationStatus) Snapshot {
	snap := Snapshot{
		VerificationID: raw.VerificationID,
		State:          ParseState(raw.State),
		Used:           flatten(raw.UsedItems),
		Missing:        flatten(raw.MissingItems),
		Extra:          flatten(raw.ExtraItems),
		Available:      flatten(raw.AvailableItems),
	}

	// Required is the display union of present and missing, in that order.
	required := make([]Item, 0, len(snap.Used)+len(snap.Missing))
	required = append(required, snap.Used...)
	required = append(required, snap.Missing...)
	snap.Required = required

	if t, err := time.Parse(time.RFC3339, raw.LastUpdated); err == nil {
		snap.LastUpdated = t
	}

	return snap
}

// flatten turns one category bucket into a flat sequence:
// instruments first, trays second, each sorted by name so repeated
// renders of the same payload are byte-identical.
func flatten(c api.CategoryItems) []Item {
	out := make([]Item, 0, len(c.Instruments)+len(c.Trays))
	out = append(out, flattenSubMap(c.Instruments, TypeInstrument)...)
	out = append(out, flattenSubMap(c.Trays, TypeTray)...)
	return out
}

func flattenSubMap(entries map[string]api.ItemDetail, typ ItemType) []Item {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, name := range names {
		d := entries[name]
		qty := d.Quantity
		if qty <= 0 {
			qty = 1
		}
		ids := d.IDs
		if ids == nil {
			ids = []int{}
		}
		items = append(items, Item{
			Name:     name,
			Type:     typ,
			Quantity: qty,
			IDs:      ids,
		})
	}
	return items
}

// NormalizeRoomScan converts a raw room scan into a room snapshot.
// The scan endpoint reports no state of its own; a room with no missing
// equipment counts as complete.
func NormalizeRoomScan(roomID string, raw *api.RoomScanResult) RoomSnapshot {
	state := StateComplete
	if len(raw.MissingEquipment) > 0 {
		state = StateIncomplete
	}

	return RoomSnapshot{
		RoomID:     roomID,
		State:      state,
		InRoom:     emptyIfNil(raw.EquipmentInRoom),
		Unexpected: emptyIfNil(raw.UnexpectedEquipment),
		Missing:    emptyIfNil(raw.MissingEquipment),
	}
}

func emptyIfNil(in []api.Equipment) []api.Equipment {
	if in == nil {
		return []api.Equipment{}
	}
	return in
}
