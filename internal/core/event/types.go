package event

import (
	"github.com/l1jgo/spawnd/internal/component"
	"github.com/l1jgo/spawnd/internal/core/ecs"
)

// SpawnEvent is written once per entity materialized by the spawn drain.
type SpawnEvent struct {
	Entity ecs.EntityID
	Kind   component.EntityKind
}

// DespawnEvent is written when an entity is marked for destruction.
// The entity stays readable until the cleanup phase of the same tick.
type DespawnEvent struct {
	Entity ecs.EntityID
	Kind   component.EntityKind
}
