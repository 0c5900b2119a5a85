// Package connectivity reports whether the document server is reachable.
//
// Repositories sample the signal once per operation with Online. The CLI
// subscribes to it to show the current mode.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/stream"
	"github.com/dmitrijs2005/gympro/internal/logging"
)

type Monitor interface {
	// Online samples the current state.
	Online(ctx context.Context) bool
	// Subscribe streams the state, starting with the current one.
	Subscribe(ctx context.Context) (<-chan bool, func())
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingMonitor probes the server with Ping on an interval while it has at
// least one subscriber.
type PingMonitor struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
	state    *stream.Subject[bool]

	mu   sync.Mutex
	stop context.CancelFunc
	done chan struct{}
}

func NewPingMonitor(p Pinger, interval, timeout time.Duration, l logging.Logger) *PingMonitor {
	m := &PingMonitor{
		pinger:   p,
		interval: interval,
		timeout:  timeout,
		logger:   l.With("module", "connectivity"),
	}
	m.state = stream.NewSubject(stream.WithHooks[bool](m.start, m.halt))
	return m
}

func (m *PingMonitor) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	online := m.pinger.Ping(ctx) == nil

	if prev, ok := m.state.Value(); !ok || prev != online {
		m.logger.Debug(ctx, "Connectivity changed", "online", online)
	}
	m.state.Publish(online)
	return online
}

func (m *PingMonitor) start() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.mu.Lock()
	m.stop = cancel
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)

		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.probe(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *PingMonitor) halt() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

// Online returns the latest probe result while the probe loop runs. With no
// subscribers it probes once.
func (m *PingMonitor) Online(ctx context.Context) bool {
	if m.state.Subscribers() > 0 {
		if v, ok := m.state.Value(); ok {
			return v
		}
	}
	return m.probe(ctx)
}

func (m *PingMonitor) Subscribe(ctx context.Context) (<-chan bool, func()) {
	return m.state.Subscribe(ctx)
}

// Manual is a monitor whose state is set by hand. It backs forced offline
// mode and tests.
type Manual struct {
	state *stream.Subject[bool]
}

func NewManual(online bool) *Manual {
	return &Manual{state: stream.NewSubject(stream.WithInitial(online))}
}

func (m *Manual) Set(online bool) {
	m.state.Publish(online)
}

func (m *Manual) Online(context.Context) bool {
	v, _ := m.state.Value()
	return v
}

func (m *Manual) Subscribe(ctx context.Context) (<-chan bool, func()) {
	return m.state.Subscribe(ctx)
}
