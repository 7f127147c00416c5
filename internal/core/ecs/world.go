package ecs

import "github.com/TheBitDrifter/mask"

// World is the top-level ECS container. It owns the entity pool, the component
// registry, per-entity component signatures and a deferred destruction queue
// flushed by CleanupSystem each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	signatures   map[EntityID]mask.Mask
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		signatures:   make(map[EntityID]mask.Mask, 1024),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Register adds stores to the registry. Stores must be registered before Insert.
func (w *World) Register(stores ...Store) {
	for _, s := range stores {
		w.registry.Register(s)
	}
}

func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	var sig mask.Mask
	w.signatures[id] = sig
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }

// HasAll reports whether a live entity carries every component of stores.
func (w *World) HasAll(id EntityID, stores ...Store) bool {
	if !w.Alive(id) {
		return false
	}
	sig := w.signatures[id]
	return sig.ContainsAll(signatureOf(stores))
}

// HasAny reports whether a live entity carries at least one component of stores.
func (w *World) HasAny(id EntityID, stores ...Store) bool {
	if !w.Alive(id) {
		return false
	}
	sig := w.signatures[id]
	return sig.ContainsAny(signatureOf(stores))
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// PendingDestruction returns the number of entities queued for cleanup.
func (w *World) PendingDestruction() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. Returns the number destroyed;
// duplicates and stale IDs are skipped.
func (w *World) FlushDestroyQueue() int {
	return w.FlushDestroyQueueFunc(nil)
}

// FlushDestroyQueueFunc is FlushDestroyQueue with a hook called once per
// destroyed entity while its components are still readable.
func (w *World) FlushDestroyQueueFunc(beforeDestroy func(EntityID)) int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		if beforeDestroy != nil {
			beforeDestroy(id)
		}
		w.registry.RemoveAll(id, w.signatures[id])
		delete(w.signatures, id)
		w.pool.Destroy(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
