package event

import "sync"

// Channel is an append-only, ordered event log with independent readers.
// One writer per tick phase; any number of readers, each with its own cursor.
// Events are never removed once written.
type Channel[T any] struct {
	mu     sync.RWMutex
	events []T
}

// Reader is a read cursor into a Channel. Not safe for concurrent use by
// more than one goroutine.
type Reader struct {
	cursor int
}

func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{events: make([]T, 0, 256)}
}

// Write appends one event.
func (c *Channel[T]) Write(ev T) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

// WriteAll appends events in order.
func (c *Channel[T]) WriteAll(evs ...T) {
	if len(evs) == 0 {
		return
	}
	c.mu.Lock()
	c.events = append(c.events, evs...)
	c.mu.Unlock()
}

// Register returns a reader positioned at the end of the log; it observes
// only events written afterwards.
func (c *Channel[T]) Register() *Reader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Reader{cursor: len(c.events)}
}

// Read returns the events written since r last read and advances r.
// The returned slice is a copy.
func (c *Channel[T]) Read(r *Reader) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r.cursor >= len(c.events) {
		return nil
	}
	out := make([]T, len(c.events)-r.cursor)
	copy(out, c.events[r.cursor:])
	r.cursor = len(c.events)
	return out
}

// Pending returns how many events r has not read yet.
func (c *Channel[T]) Pending(r *Reader) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events) - r.cursor
}

// Len returns the total number of events ever written.
func (c *Channel[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
