// internal/api/types.go
package api

import "encoding/json"

// ItemDetail is one leaf entry of a category bucket.
// The backend sends either a bare count or an object carrying
// quantity and item ids; both decode into this one shape so
// downstream code never branches on payload form.
type ItemDetail struct {
	Quantity int
	IDs      []int
}

func (d *ItemDetail) UnmarshalJSON(b []byte) error {
	// bare count
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		d.Quantity = n
		d.IDs = nil
		return nil
	}

	// object form; missing_items uses available_ids instead of ids
	var obj struct {
		Quantity     *int  `json:"quantity"`
		IDs          []int `json:"ids"`
		AvailableIDs []int `json:"available_ids"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}

	if obj.Quantity != nil {
		d.Quantity = *obj.Quantity
	} else {
		d.Quantity = 1
	}

	d.IDs = obj.IDs
	if d.IDs == nil {
		d.IDs = obj.AvailableIDs
	}

	return nil
}

// CategoryItems is one category bucket: itemName → detail, split into
// instrument and tray sub-maps. Absent or malformed sub-maps decode to
// empty maps rather than failing the whole payload.
type CategoryItems struct {
	Instruments map[string]ItemDetail
	Trays       map[string]ItemDetail
}

func (c *CategoryItems) UnmarshalJSON(b []byte) error {
	c.Instruments = map[string]ItemDetail{}
	c.Trays = map[string]ItemDetail{}

	var outer map[string]json.RawMessage
	if err := json.Unmarshal(b, &outer); err != nil {
		return nil // not an object at all: treat as empty
	}

	c.Instruments = decodeSubMap(outer["instruments"])
	c.Trays = decodeSubMap(outer["trays"])
	return nil
}

func decodeSubMap(raw json.RawMessage) map[string]ItemDetail {
	out := map[string]ItemDetail{}
	if len(raw) == 0 {
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out
	}

	for name, leaf := range entries {
		var d ItemDetail
		if err := json.Unmarshal(leaf, &d); err != nil {
			continue // one bad leaf must not poison the bucket
		}
		out[name] = d
	}
	return out
}

// VerificationStatus is the raw verification snapshot for one operation session.
type VerificationStatus struct {
	VerificationID   int           `json:"verification_id"`
	State            string        `json:"state"`
	UsedItems        CategoryItems `json:"used_items"`
	MissingItems     CategoryItems `json:"missing_items"`
	ExtraItems       CategoryItems `json:"extra_items"`
	AvailableItems   CategoryItems `json:"available_items"`
	AvailableMatches CategoryItems `json:"available_matches"`
	LastUpdated      string        `json:"last_updated"`
}

// Equipment is one large-equipment record as the backend serializes it.
type Equipment struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EquipmentID   string `json:"equipment_id"`
	EquipmentType string `json:"equipment_type"`
	Status        string `json:"status"`
	StatusDisplay string `json:"status_display"`
	Notes         string `json:"notes"`
}

// RoomScanResult is the raw outcome of one room equipment scan.
type RoomScanResult struct {
	EquipmentInRoom     []Equipment `json:"equipment_in_room"`
	UnexpectedEquipment []Equipment `json:"unexpected_equipment"`
	MissingEquipment    []Equipment `json:"missing_equipment"`
}
