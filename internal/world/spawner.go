package world

import (
	"errors"
	"fmt"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/queue"
	"github.com/l1jgo/spawnd/internal/item"
)

// ErrKindMismatch reports a request whose kind, metadata and extra data
// disagree. Always a producer bug.
var ErrKindMismatch = errors.New("spawn request kind mismatch")

// Extra is kind-specific data used to attach components after creation.
type Extra interface {
	Kind() component.EntityKind
}

// ItemExtra carries the stack of an item entity.
type ItemExtra struct {
	Stack item.Stack
}

func (ItemExtra) Kind() component.EntityKind { return component.KindItem }

// SpawnRequest is a fully formed request for one entity. Requests are
// values; the queue owns them until drained.
type SpawnRequest struct {
	Kind     component.EntityKind
	Position component.Vec3
	Velocity component.Vec3
	Metadata component.Metadata
	Extra    Extra
}

// Validate checks that kind, metadata and extra data agree.
func (r SpawnRequest) Validate() error {
	if r.Metadata == nil || r.Extra == nil {
		return fmt.Errorf("%w: %s request missing metadata or extra", ErrKindMismatch, r.Kind)
	}
	if mk := r.Metadata.Kind(); mk != r.Kind {
		return fmt.Errorf("%w: %s request carries %s metadata", ErrKindMismatch, r.Kind, mk)
	}
	if ek := r.Extra.Kind(); ek != r.Kind {
		return fmt.Errorf("%w: %s request carries %s extra", ErrKindMismatch, r.Kind, ek)
	}
	return nil
}

// Spawner queues entity spawn requests from any goroutine without write
// access to the world. SpawnerSystem materializes them during the
// post-update phase, so a spawned entity is visible from the next tick on
// and callers cannot act on it in the tick they asked for it.
type Spawner struct {
	queue *queue.Queue[SpawnRequest]
}

func NewSpawner() *Spawner {
	return &Spawner{queue: queue.New[SpawnRequest]()}
}

// Push queues a request. Never blocks, never fails.
func (s *Spawner) Push(req SpawnRequest) {
	s.queue.Push(req)
}

// SpawnItem queues an item entity carrying stack.
func (s *Spawner) SpawnItem(position, velocity component.Vec3, stack item.Stack) {
	s.Push(SpawnRequest{
		Kind:     component.KindItem,
		Position: position,
		Velocity: velocity,
		Metadata: component.NewItemMetadata(stack),
		Extra:    ItemExtra{Stack: stack},
	})
}

// Pop removes the oldest pending request. Only the drain system calls it.
func (s *Spawner) Pop() (SpawnRequest, bool) {
	return s.queue.Pop()
}

// Pending returns the approximate number of queued requests.
func (s *Spawner) Pending() int {
	return s.queue.Len()
}
