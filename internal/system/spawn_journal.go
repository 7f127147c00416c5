package system

import (
	"context"
	"fmt"
	"time"

	"github.com/l1jgo/spawnd/internal/core/event"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/data"
	"github.com/l1jgo/spawnd/internal/persist"
	"github.com/l1jgo/spawnd/internal/world"
	"go.uber.org/zap"
)

// SpawnSink receives batches of spawn records. Implemented by
// persist.SpawnLogRepo and persist.ArchiveWriter.
type SpawnSink interface {
	WriteSpawns(ctx context.Context, records []persist.SpawnRecord) error
}

// SpawnJournalSystem subscribes to the spawn channel with its own reader and
// writes a record per spawned entity to every sink. Phase 5 (Persist).
// Batches are flushed when full, every flushTicks ticks, and on Flush.
type SpawnJournalSystem struct {
	world           *world.State
	items           *data.ItemTable
	sinks           []SpawnSink
	log             *zap.Logger
	reader          *event.Reader
	batch           []persist.SpawnRecord
	batchSize       int
	flushTicks      int
	ticksSinceFlush int
	now             func() time.Time
}

func NewSpawnJournalSystem(ws *world.State, items *data.ItemTable, log *zap.Logger, batchSize, flushTicks int, sinks ...SpawnSink) *SpawnJournalSystem {
	return &SpawnJournalSystem{
		world:      ws,
		items:      items,
		sinks:      sinks,
		log:        log,
		reader:     ws.Spawns.Register(),
		batch:      make([]persist.SpawnRecord, 0, batchSize),
		batchSize:  batchSize,
		flushTicks: flushTicks,
		now:        time.Now,
	}
}

func (s *SpawnJournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *SpawnJournalSystem) Update(_ time.Duration) {
	for _, ev := range s.world.Spawns.Read(s.reader) {
		s.batch = append(s.batch, s.record(ev))
		if len(s.batch) >= s.batchSize {
			s.Flush()
		}
	}
	s.ticksSinceFlush++
	if s.ticksSinceFlush >= s.flushTicks {
		s.Flush()
	}
}

// Buffered returns the number of records waiting for the next flush.
func (s *SpawnJournalSystem) Buffered() int { return len(s.batch) }

// Flush writes the pending batch to every sink. Sink errors are logged and
// the batch is dropped for that sink; the journal keeps running.
func (s *SpawnJournalSystem) Flush() {
	s.ticksSinceFlush = 0
	if len(s.batch) == 0 {
		return
	}
	for _, sink := range s.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := sink.WriteSpawns(ctx, s.batch)
		cancel()
		if err != nil {
			s.log.Error("spawn journal write failed",
				zap.String("sink", fmt.Sprintf("%T", sink)),
				zap.Int("records", len(s.batch)),
				zap.Error(err),
			)
		}
	}
	s.log.Debug("spawn journal flushed", zap.Int("records", len(s.batch)))
	s.batch = make([]persist.SpawnRecord, 0, s.batchSize)
}

func (s *SpawnJournalSystem) record(ev event.SpawnEvent) persist.SpawnRecord {
	w := s.world
	rec := persist.SpawnRecord{
		Tick:   w.Tick(),
		Entity: uint64(ev.Entity),
		Kind:   ev.Kind.String(),
		At:     s.now(),
	}
	if pos, ok := w.Positions.Get(ev.Entity); ok {
		rec.X, rec.Y, rec.Z = pos.Current.X, pos.Current.Y, pos.Current.Z
	}
	if meta, ok := w.ItemMetadata(ev.Entity); ok && meta.Stack != nil {
		rec.ItemID = int32(meta.Stack.Type)
		rec.ItemCount = meta.Stack.Count
		if s.items != nil {
			rec.ItemName = s.items.DisplayName(meta.Stack.Type)
		} else {
			rec.ItemName = meta.Stack.Type.String()
		}
	}
	return rec
}
