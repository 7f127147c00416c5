package persist

import "time"

// SpawnRecord is one materialized entity as written to the spawn log.
type SpawnRecord struct {
	Tick      uint64    `json:"tick"`
	Entity    uint64    `json:"entity"`
	Kind      string    `json:"kind"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	ItemID    int32     `json:"item_id,omitempty"`
	ItemName  string    `json:"item_name,omitempty"`
	ItemCount uint8     `json:"item_count,omitempty"`
	At        time.Time `json:"at"`
}
