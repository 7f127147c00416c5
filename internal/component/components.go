// Package component holds the component types attached to simulated entities.
package component

// Position carries the current and previous tick positions. Previous feeds
// interpolation; an entity with Current == Previous has no motion history.
type Position struct {
	Current  Vec3
	Previous Vec3
}

// NewPosition returns a position with no history.
func NewPosition(p Vec3) Position {
	return Position{Current: p, Previous: p}
}

type Velocity struct {
	Vec3
}

// ItemMarker tags an entity as an item entity.
type ItemMarker struct{}

// Age counts ticks since spawn.
type Age struct {
	Ticks int
}
