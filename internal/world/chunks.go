package world

import (
	"math"

	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
)

// ChunkGrid indexes entities by the 16x16 column they stand in.
// Written only from exclusive phases (spawn drain, movement, expiry) and
// read from the parallel update phase, so it carries no lock.
const chunkSize = 16

type chunkKey struct {
	cx int32
	cz int32
}

func toChunkCoord(v float64) int32 {
	return int32(math.Floor(v / chunkSize))
}

func chunkOf(p component.Vec3) chunkKey {
	return chunkKey{cx: toChunkCoord(p.X), cz: toChunkCoord(p.Z)}
}

type ChunkGrid struct {
	cells map[chunkKey]map[ecs.EntityID]struct{}
	count int
}

func NewChunkGrid() *ChunkGrid {
	return &ChunkGrid{
		cells: make(map[chunkKey]map[ecs.EntityID]struct{}),
	}
}

// Add places an entity into the chunk containing p.
func (g *ChunkGrid) Add(id ecs.EntityID, p component.Vec3) {
	k := chunkOf(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	if _, ok := cell[id]; !ok {
		cell[id] = struct{}{}
		g.count++
	}
}

// Remove takes an entity out of the chunk containing p and reports whether
// it was indexed there.
func (g *ChunkGrid) Remove(id ecs.EntityID, p component.Vec3) bool {
	k := chunkOf(p)
	cell := g.cells[k]
	if cell == nil {
		return false
	}
	if _, ok := cell[id]; !ok {
		return false
	}
	delete(cell, id)
	g.count--
	if len(cell) == 0 {
		delete(g.cells, k)
	}
	return true
}

// Move updates an entity's chunk when it crosses a chunk border. Entities
// not indexed at from are left out.
func (g *ChunkGrid) Move(id ecs.EntityID, from, to component.Vec3) {
	if chunkOf(from) == chunkOf(to) {
		return
	}
	if g.Remove(id, from) {
		g.Add(id, to)
	}
}

// Nearby returns the entities in the 3x3 chunks around p. Callers do their
// own distance filtering.
func (g *ChunkGrid) Nearby(p component.Vec3) []ecs.EntityID {
	c := chunkOf(p)
	var result []ecs.EntityID
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for id := range g.cells[chunkKey{cx: c.cx + dx, cz: c.cz + dz}] {
				result = append(result, id)
			}
		}
	}
	return result
}

// Len returns the number of indexed entities.
func (g *ChunkGrid) Len() int { return g.count }
