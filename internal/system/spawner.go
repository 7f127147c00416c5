package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
	"github.com/l1jgo/spawnd/internal/core/event"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
	"go.uber.org/zap"
)

// SpawnerSystem materializes the requests queued in the world's Spawner.
// Phase 3 (PostUpdate): runs with exclusive access to the component stores
// after every parallel producer of the tick has returned.
//
// Any failure here is a broken invariant (mismatched request, insert into a
// fresh ID failing, kind without marker logic). The system panics rather
// than leave a half-built entity in the store.
type SpawnerSystem struct {
	world   *world.State
	log     *zap.Logger
	spawned uint64
}

func NewSpawnerSystem(ws *world.State, log *zap.Logger) *SpawnerSystem {
	return &SpawnerSystem{world: ws, log: log}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Spawned returns the total number of entities created so far.
func (s *SpawnerSystem) Spawned() uint64 { return s.spawned }

func (s *SpawnerSystem) Update(_ time.Duration) {
	n := 0
	for {
		req, ok := s.world.Spawner.Pop()
		if !ok {
			break
		}
		id := s.spawn(req)
		s.world.Spawns.Write(event.SpawnEvent{Entity: id, Kind: req.Kind})
		n++
	}
	if n == 0 {
		return
	}
	s.spawned += uint64(n)
	s.log.Debug("spawn queue drained",
		zap.Int("count", n),
		zap.Uint64("total", s.spawned),
	)
}

func (s *SpawnerSystem) spawn(req world.SpawnRequest) ecs.EntityID {
	if err := req.Validate(); err != nil {
		s.fatal("invalid spawn request", err, req.Kind)
	}

	w := s.world
	var attach func(ecs.EntityID) error
	switch req.Kind {
	case component.KindItem:
		attach = func(id ecs.EntityID) error {
			if err := ecs.Insert(w.ECS, w.ItemMarkers, id, component.ItemMarker{}); err != nil {
				return err
			}
			return ecs.Insert(w.ECS, w.Ages, id, component.Age{})
		}
	default:
		s.fatal("no marker for entity kind", fmt.Errorf("spawning %s entities is not implemented", req.Kind), req.Kind)
	}

	id := w.ECS.CreateEntity()
	s.must(ecs.Insert(w.ECS, w.Positions, id, component.NewPosition(req.Position)), req.Kind)
	s.must(ecs.Insert(w.ECS, w.Velocities, id, component.Velocity{Vec3: req.Velocity}), req.Kind)
	s.must(ecs.Insert(w.ECS, w.Metadata, id, req.Metadata), req.Kind)
	s.must(ecs.Insert(w.ECS, w.Kinds, id, req.Kind), req.Kind)
	s.must(attach(id), req.Kind)
	w.Chunks.Add(id, req.Position)

	if ce := s.log.Check(zap.DebugLevel, "entity spawned"); ce != nil {
		ce.Write(
			zap.Stringer("entity", id),
			zap.Stringer("kind", req.Kind),
			zap.Float64("x", req.Position.X),
			zap.Float64("y", req.Position.Y),
			zap.Float64("z", req.Position.Z),
		)
	}
	return id
}

func (s *SpawnerSystem) must(err error, kind component.EntityKind) {
	if err != nil {
		s.fatal("component insert failed", err, kind)
	}
}

func (s *SpawnerSystem) fatal(msg string, err error, kind component.EntityKind) {
	s.log.Error(msg, zap.Stringer("kind", kind), zap.Error(err))
	panic(fmt.Errorf("spawner: %s: %w", msg, err))
}
