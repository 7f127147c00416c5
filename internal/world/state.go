package world

import (
	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
	"github.com/l1jgo/spawnd/internal/core/event"
)

// State is the shared simulation state. Component stores are written only
// by systems of exclusive phases; parallel-phase systems read them and
// request spawns through Spawner.
type State struct {
	ECS *ecs.World

	Positions   *ecs.PtrComponentStore[component.Position]
	Velocities  *ecs.PtrComponentStore[component.Velocity]
	Metadata    *ecs.PtrComponentStore[component.Metadata]
	Kinds       *ecs.PtrComponentStore[component.EntityKind]
	ItemMarkers *ecs.PtrComponentStore[component.ItemMarker]
	Ages        *ecs.PtrComponentStore[component.Age]

	Chunks *ChunkGrid

	Spawner  *Spawner
	Spawns   *event.Channel[event.SpawnEvent]
	Despawns *event.Channel[event.DespawnEvent]

	tick uint64
}

func NewState() *State {
	s := &State{
		ECS:         ecs.NewWorld(),
		Positions:   ecs.NewPtrComponentStore[component.Position](),
		Velocities:  ecs.NewPtrComponentStore[component.Velocity](),
		Metadata:    ecs.NewPtrComponentStore[component.Metadata](),
		Kinds:       ecs.NewPtrComponentStore[component.EntityKind](),
		ItemMarkers: ecs.NewPtrComponentStore[component.ItemMarker](),
		Ages:        ecs.NewPtrComponentStore[component.Age](),
		Chunks:      NewChunkGrid(),
		Spawner:     NewSpawner(),
		Spawns:      event.NewChannel[event.SpawnEvent](),
		Despawns:    event.NewChannel[event.DespawnEvent](),
	}
	s.ECS.Register(s.Positions, s.Velocities, s.Metadata, s.Kinds, s.ItemMarkers, s.Ages)
	return s
}

// Tick returns the current tick number.
func (s *State) Tick() uint64 { return s.tick }

// AdvanceTick is called once per tick by the game loop before the runner.
func (s *State) AdvanceTick() uint64 {
	s.tick++
	return s.tick
}

// ItemMetadata returns the metadata of an item entity.
func (s *State) ItemMetadata(id ecs.EntityID) (*component.ItemMetadata, bool) {
	meta, ok := s.Metadata.Get(id)
	if !ok {
		return nil, false
	}
	im, ok := (*meta).(*component.ItemMetadata)
	return im, ok
}
