package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain external input
	PhasePreUpdate               // 1: movement, aging (exclusive)
	PhaseUpdate                  // 2: game logic, read-only, runs in parallel
	PhasePostUpdate              // 3: spawn drain (exclusive)
	PhaseOutput                  // 4: build outbound state
	PhasePersist                 // 5: journal flush
	PhaseCleanup                 // 6: destroy queued entities
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "persist", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Parallel reports whether systems of this phase may run concurrently.
// Systems registered in a parallel phase must only read shared state and
// request side effects through thread-safe queues such as the Spawner.
func (p Phase) Parallel() bool { return p == PhaseUpdate }

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
