package ecs

import "github.com/TheBitDrifter/mask"

// Store is implemented by every component store so the Registry can assign
// signature bits and bulk-remove an entity's data on destroy.
type Store interface {
	Remove(id EntityID)
	Bit() uint32
	bind(bit uint32)
}

// PtrComponentStore is a generic typed map store for ECS components.
type PtrComponentStore[T any] struct {
	data  map[EntityID]*T
	bit   uint32
	bound bool
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 256),
	}
}

func (s *PtrComponentStore[T]) bind(bit uint32) {
	s.bit = bit
	s.bound = true
}

// Bit is the signature bit assigned at registration.
func (s *PtrComponentStore[T]) Bit() uint32 { return s.bit }

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// Insert attaches c to a live entity that does not carry the component yet
// and marks the store's bit in the entity signature.
func Insert[T any](w *World, s *PtrComponentStore[T], id EntityID, c T) error {
	if !s.bound {
		return ErrStoreNotRegistered
	}
	if !w.Alive(id) {
		return &InsertError{Entity: id, Err: ErrEntityDead}
	}
	if s.Has(id) {
		return &InsertError{Entity: id, Err: ErrComponentExists}
	}
	s.data[id] = &c
	sig := w.signatures[id]
	sig.Mark(s.bit)
	w.signatures[id] = sig
	return nil
}

func signatureOf(stores []Store) mask.Mask {
	var m mask.Mask
	for _, s := range stores {
		m.Mark(s.Bit())
	}
	return m
}
