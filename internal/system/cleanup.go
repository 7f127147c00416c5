package system

import (
	"time"

	"github.com/l1jgo/spawnd/internal/core/ecs"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end
// and drops destroyed entities from the chunk index. Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCleanupSystem(ws *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	w := s.world
	n := w.ECS.FlushDestroyQueueFunc(func(id ecs.EntityID) {
		if pos, ok := w.Positions.Get(id); ok {
			w.Chunks.Remove(id, pos.Current)
		}
	})
	if n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Int("alive", w.ECS.Len()))
	}
}
