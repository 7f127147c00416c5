package persist

import (
	"strings"
	"testing"
	"time"
)

func TestSpawnBatch(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []SpawnRecord{
		{Tick: 7, Entity: 1<<32 | 3, Kind: "item", X: 0, Y: 10, Z: 1.04, ItemID: 368, ItemCount: 4, At: at},
		{Tick: 7, Entity: 4, Kind: "item"},
	}
	batch := spawnBatch(records)
	if batch.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", batch.Len())
	}

	q := batch.QueuedQueries[0]
	if !strings.HasPrefix(q.SQL, "INSERT INTO spawn_log") {
		t.Fatalf("SQL = %q", q.SQL)
	}
	if n := strings.Count(q.SQL, "$"); n != len(q.Arguments) {
		t.Fatalf("%d placeholders for %d arguments", n, len(q.Arguments))
	}
	want := []any{int64(7), int64(1<<32 | 3), "item", 0.0, 10.0, 1.04, int32(368), int16(4), at}
	for i, w := range want {
		if q.Arguments[i] != w {
			t.Errorf("argument %d = %v (%T), want %v (%T)", i, q.Arguments[i], q.Arguments[i], w, w)
		}
	}
	if got := batch.QueuedQueries[1].Arguments[1]; got != int64(4) {
		t.Errorf("second record entity = %v, want record order", got)
	}
}
