package system

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner executes systems in phase order each tick. Systems of a parallel
// phase run concurrently; every other phase runs in registration order on
// the calling goroutine, so an exclusive phase never overlaps a parallel one.
type Runner struct {
	systems     []System
	sorted      bool
	parallelism int
	ticks       uint64
}

// PanicError carries a panic raised by a system running in a parallel phase.
// The runner re-panics with it on the tick goroutine.
type PanicError struct {
	System string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("system %s panicked: %v", e.System, e.Value)
}

func NewRunner() *Runner {
	return &Runner{
		systems:     make([]System, 0, 16),
		parallelism: -1,
	}
}

// SetParallelism caps how many parallel-phase systems run at once.
// n <= 0 means no limit.
func (r *Runner) SetParallelism(n int) {
	if n <= 0 {
		n = -1
	}
	r.parallelism = n
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Ticks returns the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for i := 0; i < len(r.systems); {
		phase := r.systems[i].Phase()
		j := i
		for j < len(r.systems) && r.systems[j].Phase() == phase {
			j++
		}
		r.runPhase(phase, r.systems[i:j], dt)
		i = j
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	var group []System
	for _, s := range r.systems {
		if s.Phase() == phase {
			group = append(group, s)
		}
	}
	r.runPhase(phase, group, dt)
}

func (r *Runner) runPhase(phase Phase, group []System, dt time.Duration) {
	if !phase.Parallel() || len(group) < 2 {
		for _, s := range group {
			s.Update(dt)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(r.parallelism)
	for _, s := range group {
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &PanicError{System: fmt.Sprintf("%T", s), Value: v}
				}
			}()
			s.Update(dt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
