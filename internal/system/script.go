package system

import (
	"time"

	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
)

// TickHook is implemented by scripting.Engine.
type TickHook interface {
	OnTick(tick uint64)
}

// ScriptSystem calls the scripts' on_tick hook. Phase 2 (Update): runs in
// parallel with other update systems and only reaches the world through the
// Spawner.
type ScriptSystem struct {
	world *world.State
	hook  TickHook
}

func NewScriptSystem(ws *world.State, hook TickHook) *ScriptSystem {
	return &ScriptSystem{world: ws, hook: hook}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(_ time.Duration) {
	s.hook.OnTick(s.world.Tick())
}
