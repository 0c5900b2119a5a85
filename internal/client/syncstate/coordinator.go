// Package syncstate tracks whether any reconciliation is in flight.
package syncstate

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gympro/internal/client/stream"
)

// Coordinator is a reference-counted "is syncing" flag. One instance is
// shared by every repository of the process.
type Coordinator struct {
	mu      sync.Mutex
	count   int
	syncing *stream.Subject[bool]
}

func NewCoordinator() *Coordinator {
	return &Coordinator{syncing: stream.NewSubject(stream.WithInitial(false))}
}

// StartSync registers one more sync in flight.
func (c *Coordinator) StartSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count++
	c.syncing.Publish(true)
}

// EndSync matches one StartSync. Extra calls clamp the count at zero.
func (c *Coordinator) EndSync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count--
	if c.count <= 0 {
		c.count = 0
		c.syncing.Publish(false)
	}
}

// Track runs fn between StartSync and EndSync. EndSync runs even when fn
// panics.
func (c *Coordinator) Track(fn func()) {
	c.StartSync()
	defer c.EndSync()
	fn()
}

func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *Coordinator) IsSyncing() bool {
	v, _ := c.syncing.Value()
	return v
}

// Subscribe streams the flag, starting with its current value.
func (c *Coordinator) Subscribe(ctx context.Context) (<-chan bool, func()) {
	return c.syncing.Subscribe(ctx)
}
