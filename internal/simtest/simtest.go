// Package simtest builds a world plus runner for system tests.
package simtest

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/l1jgo/spawnd/internal/core/event"
	coresys "github.com/l1jgo/spawnd/internal/core/system"
	"github.com/l1jgo/spawnd/internal/world"
)

// TickRate is the dt handed to systems by Dispatch.
const TickRate = 50 * time.Millisecond

// SystemFactory builds a system against the harness state.
type SystemFactory func(ws *world.State, log *zap.Logger) coresys.System

type Builder struct {
	tb        testing.TB
	factories []SystemFactory
}

// Harness is a built world and runner.
type Harness struct {
	State   *world.State
	Runner  *coresys.Runner
	Log     *zap.Logger
	Systems []coresys.System
}

func NewBuilder(tb testing.TB) *Builder {
	return &Builder{tb: tb}
}

// With registers a system; systems keep registration order within a phase.
func (b *Builder) With(f SystemFactory) *Builder {
	b.factories = append(b.factories, f)
	return b
}

func (b *Builder) Build() *Harness {
	log := zaptest.NewLogger(b.tb)
	h := &Harness{
		State:  world.NewState(),
		Runner: coresys.NewRunner(),
		Log:    log,
	}
	for _, f := range b.factories {
		s := f(h.State, log)
		h.Systems = append(h.Systems, s)
		h.Runner.Register(s)
	}
	return h
}

// Dispatch advances the tick counter and runs one full tick.
func (h *Harness) Dispatch() {
	h.State.AdvanceTick()
	h.Runner.Tick(TickRate)
}

// Reader registers a reader on the spawn channel.
func (h *Harness) Reader() *event.Reader {
	return h.State.Spawns.Register()
}

// TriggeredEvents returns the spawn events r has not seen yet.
func (h *Harness) TriggeredEvents(r *event.Reader) []event.SpawnEvent {
	return h.State.Spawns.Read(r)
}

// DespawnReader registers a reader on the despawn channel.
func (h *Harness) DespawnReader() *event.Reader {
	return h.State.Despawns.Register()
}

// TriggeredDespawns returns the despawn events r has not seen yet.
func (h *Harness) TriggeredDespawns(r *event.Reader) []event.DespawnEvent {
	return h.State.Despawns.Read(r)
}
