package ecs

import (
	"errors"
	"testing"
)

type testPos struct{ X, Y float64 }
type testVel struct{ X, Y float64 }
type testTag struct{}

func newTestWorld() (*World, *PtrComponentStore[testPos], *PtrComponentStore[testVel], *PtrComponentStore[testTag]) {
	w := NewWorld()
	pos := NewPtrComponentStore[testPos]()
	vel := NewPtrComponentStore[testVel]()
	tag := NewPtrComponentStore[testTag]()
	w.Register(pos, vel, tag)
	return w, pos, vel, tag
}

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if !p.Alive(a) {
		t.Fatalf("fresh entity %s not alive", a)
	}
	if !p.Destroy(a) {
		t.Fatalf("Destroy(%s) = false, want true", a)
	}
	if p.Alive(a) {
		t.Fatalf("destroyed entity %s still alive", a)
	}
	if p.Destroy(a) {
		t.Fatalf("second Destroy(%s) = true, want false", a)
	}

	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("recycled index = %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() == a.Generation() {
		t.Fatalf("recycled entity kept generation %d", b.Generation())
	}
	if p.Alive(a) {
		t.Fatalf("stale ID %s alive after recycle", a)
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}

func TestInsert(t *testing.T) {
	w, pos, vel, tag := newTestWorld()
	id := w.CreateEntity()

	if err := Insert(w, pos, id, testPos{X: 1, Y: 2}); err != nil {
		t.Fatalf("Insert position: %v", err)
	}
	if err := Insert(w, tag, id, testTag{}); err != nil {
		t.Fatalf("Insert tag: %v", err)
	}

	got, ok := pos.Get(id)
	if !ok || got.X != 1 || got.Y != 2 {
		t.Fatalf("position = %+v (ok=%v), want {1 2}", got, ok)
	}
	if !w.HasAll(id, pos, tag) {
		t.Fatalf("HasAll(pos, tag) = false")
	}
	if w.HasAll(id, pos, vel) {
		t.Fatalf("HasAll(pos, vel) = true without velocity")
	}
	if !w.HasAny(id, vel, tag) {
		t.Fatalf("HasAny(vel, tag) = false")
	}
}

func TestInsertErrors(t *testing.T) {
	w, pos, _, _ := newTestWorld()
	id := w.CreateEntity()
	if err := Insert(w, pos, id, testPos{}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}

	err := Insert(w, pos, id, testPos{X: 9})
	if !errors.Is(err, ErrComponentExists) {
		t.Fatalf("duplicate Insert error = %v, want ErrComponentExists", err)
	}
	if got, _ := pos.Get(id); got.X != 0 {
		t.Fatalf("duplicate Insert overwrote component: %+v", got)
	}

	dead := w.CreateEntity()
	w.MarkForDestruction(dead)
	w.FlushDestroyQueue()
	err = Insert(w, pos, dead, testPos{})
	if !errors.Is(err, ErrEntityDead) {
		t.Fatalf("Insert on dead entity error = %v, want ErrEntityDead", err)
	}
	var ie *InsertError
	if !errors.As(err, &ie) || ie.Entity != dead {
		t.Fatalf("error %v does not carry entity %s", err, dead)
	}

	loose := NewPtrComponentStore[testPos]()
	if err := Insert(w, loose, id, testPos{}); !errors.Is(err, ErrStoreNotRegistered) {
		t.Fatalf("Insert into unregistered store error = %v", err)
	}
}

func TestFlushDestroyQueue(t *testing.T) {
	w, pos, vel, tag := newTestWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	for _, id := range []EntityID{a, b} {
		if err := Insert(w, pos, id, testPos{}); err != nil {
			t.Fatal(err)
		}
		if err := Insert(w, vel, id, testVel{}); err != nil {
			t.Fatal(err)
		}
	}

	w.MarkForDestruction(a)
	w.MarkForDestruction(a)
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Fatalf("FlushDestroyQueue() = %d, want 1", n)
	}
	if w.Alive(a) || pos.Has(a) || vel.Has(a) {
		t.Fatalf("entity %s survived cleanup", a)
	}
	if !pos.Has(b) || !vel.Has(b) {
		t.Fatalf("entity %s lost components", b)
	}
	if tag.Len() != 0 {
		t.Fatalf("tag store Len() = %d, want 0", tag.Len())
	}
	if w.Len() != 1 {
		t.Fatalf("world Len() = %d, want 1", w.Len())
	}
}

func TestEachJoins(t *testing.T) {
	w, pos, vel, tag := newTestWorld()
	for i := 0; i < 6; i++ {
		id := w.CreateEntity()
		_ = Insert(w, pos, id, testPos{X: float64(i)})
		if i%2 == 0 {
			_ = Insert(w, vel, id, testVel{X: 1})
		}
		if i%3 == 0 {
			_ = Insert(w, tag, id, testTag{})
		}
	}

	n2 := 0
	Each2(pos, vel, func(_ EntityID, p *testPos, v *testVel) {
		p.X += v.X
		n2++
	})
	if n2 != 3 {
		t.Fatalf("Each2 visited %d, want 3", n2)
	}

	n3 := 0
	Each3(pos, vel, tag, func(EntityID, *testPos, *testVel, *testTag) { n3++ })
	if n3 != 1 {
		t.Fatalf("Each3 visited %d, want 1", n3)
	}

	if got := len(Collect(pos)); got != 6 {
		t.Fatalf("Collect returned %d ids, want 6", got)
	}
}

func TestFlushDestroyQueueFunc(t *testing.T) {
	w, pos, _, _ := newTestWorld()
	a := w.CreateEntity()
	if err := Insert(w, pos, a, testPos{X: 4}); err != nil {
		t.Fatal(err)
	}
	w.MarkForDestruction(a)
	w.MarkForDestruction(a)

	var seen []float64
	n := w.FlushDestroyQueueFunc(func(id EntityID) {
		p, ok := pos.Get(id)
		if !ok {
			t.Fatalf("component of %s gone before hook", id)
		}
		seen = append(seen, p.X)
	})
	if n != 1 || len(seen) != 1 || seen[0] != 4 {
		t.Fatalf("n=%d seen=%v, want one call with X=4", n, seen)
	}
	if pos.Has(a) {
		t.Fatalf("component survived flush")
	}
}
