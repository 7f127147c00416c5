package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrEntityDead         = errors.New("entity is not alive")
	ErrComponentExists    = errors.New("component already exists on entity")
	ErrStoreNotRegistered = errors.New("component store not registered")
)

// InsertError reports which entity a failed Insert targeted.
type InsertError struct {
	Entity EntityID
	Err    error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert component on entity %s: %v", e.Entity, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }
