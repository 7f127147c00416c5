package world

import (
	"testing"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
)

func TestChunkCoordNegative(t *testing.T) {
	cases := []struct {
		v    float64
		want int32
	}{
		{0, 0},
		{15.99, 0},
		{16, 1},
		{-0.01, -1},
		{-16, -1},
		{-16.5, -2},
	}
	for _, c := range cases {
		if got := toChunkCoord(c.v); got != c.want {
			t.Errorf("toChunkCoord(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestChunkGridNearby(t *testing.T) {
	g := NewChunkGrid()
	a, b, far := ecs.EntityID(1), ecs.EntityID(2), ecs.EntityID(3)
	g.Add(a, component.Vec3{X: 1, Z: 1})
	g.Add(b, component.Vec3{X: -5, Y: 200, Z: 20})
	g.Add(far, component.Vec3{X: 100, Z: 100})
	g.Add(a, component.Vec3{X: 2, Z: 2})

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	near := g.Nearby(component.Vec3{})
	if len(near) != 2 {
		t.Fatalf("Nearby = %v, want 2 entities", near)
	}
	for _, id := range near {
		if id == far {
			t.Fatalf("Nearby returned far entity")
		}
	}
}

func TestChunkGridMoveAndRemove(t *testing.T) {
	g := NewChunkGrid()
	id := ecs.EntityID(7)
	start := component.Vec3{X: 1, Z: 1}
	end := component.Vec3{X: 200, Z: -200}

	g.Add(id, start)
	g.Move(id, start, end)
	if len(g.Nearby(start)) != 0 {
		t.Fatalf("entity still indexed at start")
	}
	if got := g.Nearby(end); len(got) != 1 || got[0] != id {
		t.Fatalf("Nearby(end) = %v", got)
	}

	g.Remove(id, start)
	if g.Len() != 1 {
		t.Fatalf("removing from the wrong chunk changed Len to %d", g.Len())
	}
	g.Remove(id, end)
	if g.Len() != 0 || len(g.cells) != 0 {
		t.Fatalf("grid not empty after remove: len=%d cells=%d", g.Len(), len(g.cells))
	}
}

func TestChunkGridMoveIgnoresUnindexed(t *testing.T) {
	g := NewChunkGrid()
	g.Move(ecs.EntityID(9), component.Vec3{X: 1}, component.Vec3{X: 100})
	if g.Len() != 0 {
		t.Fatalf("Move indexed an unknown entity: Len() = %d", g.Len())
	}
}
