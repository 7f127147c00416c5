package system

import (
	"math"
	"time"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
)

const (
	itemGravity = 16.0 // blocks/s², 0.04 blocks/tick² at 20 TPS
	itemDrag    = 0.98 // velocity kept per 50ms
)

// MovementSystem integrates velocity into position and shifts the current
// position into Previous. Phase 1 (PreUpdate), so entities spawned in the
// previous tick's drain keep Current == Previous through their first output.
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	drag := math.Pow(itemDrag, sec/0.05)
	w := s.world
	ecs.Each2(w.Positions, w.Velocities, func(id ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.Previous = p.Current
		if w.ItemMarkers.Has(id) && !s.noGravity(id) {
			v.Y -= itemGravity * sec
			v.Vec3 = v.Vec3.Scale(drag)
		}
		p.Current = p.Current.Add(v.Vec3.Scale(sec))
		w.Chunks.Move(id, p.Previous, p.Current)
	})
}

func (s *MovementSystem) noGravity(id ecs.EntityID) bool {
	meta, ok := s.world.Metadata.Get(id)
	if !ok {
		return false
	}
	return (*meta).Base().NoGravity
}
