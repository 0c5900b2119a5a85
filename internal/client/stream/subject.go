// Package stream has the publish/subscribe primitives behind the live
// signals of the client: connectivity, sync state and table invalidations.
package stream

import (
	"context"
	"sync"
)

// Subject is a hot multicast value. Every subscriber starts with the latest
// published value, if any, and then observes later values. A slow subscriber
// only ever sees the newest value it has not consumed yet.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	has    bool
	nextID int
	subs   map[int]chan T

	// hookMu orders subscriber-count transitions with their hooks.
	hookMu  sync.Mutex
	onFirst func()
	onLast  func()
}

type Option[T any] func(*Subject[T])

// WithHooks registers callbacks run when the first subscriber arrives and
// when the last one leaves. Hooks may call Publish but not Subscribe.
func WithHooks[T any](onFirst, onLast func()) Option[T] {
	return func(s *Subject[T]) {
		s.onFirst = onFirst
		s.onLast = onLast
	}
}

// WithInitial seeds the subject with a value.
func WithInitial[T any](v T) Option[T] {
	return func(s *Subject[T]) {
		s.value = v
		s.has = true
	}
}

func NewSubject[T any](opts ...Option[T]) *Subject[T] {
	s := &Subject[T]{subs: make(map[int]chan T)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Publish stores v and hands it to every subscriber, replacing any value
// the subscriber has not received yet. It never blocks.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.has = true
	for _, ch := range s.subs {
		offer(ch, v)
	}
}

func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// Value returns the latest published value.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.has
}

// Subscribers returns the number of active subscriptions.
func (s *Subject[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Subscribe registers a subscriber. The channel is closed after cancel is
// called or ctx is done. cancel is idempotent.
func (s *Subject[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	s.hookMu.Lock()
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan T, 1)
	if s.has {
		ch <- s.value
	}
	s.subs[id] = ch
	first := len(s.subs) == 1
	s.mu.Unlock()
	if first && s.onFirst != nil {
		s.onFirst()
	}
	s.hookMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() { s.unsubscribe(id) })
	}
	stop := context.AfterFunc(ctx, cancel)

	return ch, func() {
		stop()
		cancel()
	}
}

func (s *Subject[T]) unsubscribe(id int) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()

	s.mu.Lock()
	ch, ok := s.subs[id]
	if ok {
		delete(s.subs, id)
		close(ch)
	}
	last := ok && len(s.subs) == 0
	s.mu.Unlock()

	if last && s.onLast != nil {
		s.onLast()
	}
}

// First blocks until a value is available and returns it.
func (s *Subject[T]) First(ctx context.Context) (T, error) {
	ch, cancel := s.Subscribe(ctx)
	defer cancel()

	select {
	case v, ok := <-ch:
		if ok {
			return v, nil
		}
	case <-ctx.Done():
	}
	var zero T
	return zero, ctx.Err()
}
