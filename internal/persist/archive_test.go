package persist

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

func readArchive(t *testing.T, path string) []SpawnRecord {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var out []SpawnRecord
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var rec SpawnRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestArchiveWriterRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	a := NewArchiveWriter(dir, "spawns")
	a.now = func() time.Time { return clock }
	ctx := context.Background()

	first := []SpawnRecord{
		{Tick: 1, Entity: 7, Kind: "item", X: 1, ItemID: 368, ItemName: "Ender Pearl", ItemCount: 4},
		{Tick: 1, Entity: 8, Kind: "item", Y: 2},
	}
	if err := a.WriteSpawns(ctx, first); err != nil {
		t.Fatalf("WriteSpawns: %v", err)
	}
	if err := a.WriteSpawns(ctx, []SpawnRecord{{Tick: 2, Entity: 9, Kind: "item"}}); err != nil {
		t.Fatalf("WriteSpawns: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	if err := a.WriteSpawns(ctx, []SpawnRecord{{Tick: 3, Entity: 10, Kind: "item"}}); err != nil {
		t.Fatalf("WriteSpawns after rotate: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readArchive(t, filepath.Join(dir, "spawns-2026-03-01-10.jsonl.zst"))
	if len(got) != 3 {
		t.Fatalf("hour 10 has %d records, want 3", len(got))
	}
	if got[0].ItemName != "Ender Pearl" || got[0].ItemCount != 4 || got[2].Entity != 9 {
		t.Fatalf("hour 10 records = %+v", got)
	}

	got = readArchive(t, filepath.Join(dir, "spawns-2026-03-01-11.jsonl.zst"))
	if len(got) != 1 || got[0].Tick != 3 {
		t.Fatalf("hour 11 records = %+v", got)
	}
}

func TestArchiveWriterEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiveWriter(dir, "spawns")
	if err := a.WriteSpawns(context.Background(), nil); err != nil {
		t.Fatalf("WriteSpawns(nil): %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("empty batch created %d files", len(entries))
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestArchiveWriterCloseReportsFlushError(t *testing.T) {
	a := NewArchiveWriter(t.TempDir(), "spawns")
	if err := a.WriteSpawns(context.Background(), []SpawnRecord{{Tick: 1, Kind: "item"}}); err != nil {
		t.Fatalf("WriteSpawns: %v", err)
	}
	// Buffered bytes that can no longer reach the closed encoder.
	if err := a.enc.Close(); err != nil {
		t.Fatalf("encoder close: %v", err)
	}
	if _, err := a.w.WriteString("{}\n"); err != nil {
		t.Fatalf("buffer write: %v", err)
	}

	err := a.Close()
	if !errors.Is(err, zstd.ErrEncoderClosed) {
		t.Fatalf("Close() = %v, want ErrEncoderClosed from the flush", err)
	}
	if a.f != nil || a.enc != nil || a.w != nil {
		t.Fatalf("writer not reset after failed close")
	}
}
