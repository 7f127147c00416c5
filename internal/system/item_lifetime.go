package system

import (
	"time"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
	"github.com/l1jgo/spawnd/internal/core/event"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
	"go.uber.org/zap"
)

// ItemLifetimeSystem ages item entities and queues them for destruction once
// they reach the configured lifetime. Phase 1 (PreUpdate). A lifetime of 0
// keeps items forever.
type ItemLifetimeSystem struct {
	world    *world.State
	log      *zap.Logger
	lifetime int
}

func NewItemLifetimeSystem(ws *world.State, log *zap.Logger, lifetimeTicks int) *ItemLifetimeSystem {
	return &ItemLifetimeSystem{world: ws, log: log, lifetime: lifetimeTicks}
}

func (s *ItemLifetimeSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *ItemLifetimeSystem) Update(_ time.Duration) {
	if s.lifetime <= 0 {
		return
	}
	w := s.world
	expired := 0
	ecs.Each2(w.Ages, w.ItemMarkers, func(id ecs.EntityID, age *component.Age, _ *component.ItemMarker) {
		age.Ticks++
		if age.Ticks != s.lifetime {
			return
		}
		w.ECS.MarkForDestruction(id)
		w.Despawns.Write(event.DespawnEvent{Entity: id, Kind: component.KindItem})
		expired++
	})
	if expired > 0 {
		s.log.Debug("item entities expired", zap.Int("count", expired))
	}
}
