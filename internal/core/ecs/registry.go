package ecs

import "github.com/TheBitDrifter/mask"

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Store
	bits   []mask.Mask // single-bit mask per store, same order as stores
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Store, 0, 16),
		bits:   make([]mask.Mask, 0, 16),
	}
}

// Register adds a component store to the registry and assigns its signature bit.
func (r *Registry) Register(store Store) {
	bit := uint32(len(r.stores))
	store.bind(bit)
	var m mask.Mask
	m.Mark(bit)
	r.stores = append(r.stores, store)
	r.bits = append(r.bits, m)
}

// Len returns the number of registered stores.
func (r *Registry) Len() int { return len(r.stores) }

// RemoveAll clears the entity from every registered store present in sig.
func (r *Registry) RemoveAll(id EntityID, sig mask.Mask) {
	for i, s := range r.stores {
		if sig.ContainsAll(r.bits[i]) {
			s.Remove(id)
		}
	}
}
