package engine

import (
	"context"
	"sync"
	"time"

	"github.com/TimelordUK/lyricsync/pkg/lrc"
)

// DefaultPollInterval is the display refresh period
const DefaultPollInterval = 100 * time.Millisecond

// PositionFunc returns the playback position in milliseconds
type PositionFunc func() int64

// Frame is what the display receives on each tick
type Frame struct {
	PositionMS int64
	Synced     bool // false means show the full unsynced text
	Window     lrc.Window
	Status     Status
}

// Poller queries the playback position on a fixed interval and pushes
// the resulting display frame to a sink
type Poller struct {
	engine   *Engine
	position PositionFunc
	sink     func(Frame)
	interval time.Duration

	mu     sync.Mutex
	ticks  int
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a poller; interval <= 0 uses DefaultPollInterval
func NewPoller(e *Engine, position PositionFunc, sink func(Frame), interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		engine:   e,
		position: position,
		sink:     sink,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the polling loop in a goroutine
func (p *Poller) Start() {
	p.wg.Add(1)
	go p.run()
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.sink(p.Poll())
		}
	}
}

// Poll performs a single tick and returns the frame without delivering it
func (p *Poller) Poll() Frame {
	p.mu.Lock()
	p.ticks++
	p.mu.Unlock()

	pos := p.position()
	window, synced, status := p.engine.Snapshot(pos)

	return Frame{
		PositionMS: pos,
		Synced:     synced,
		Window:     window,
		Status:     status,
	}
}

// Ticks returns how many ticks have run
func (p *Poller) Ticks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

// Interval returns the polling period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Close stops the loop and waits for it to exit
func (p *Poller) Close() error {
	p.cancel()
	p.wg.Wait()
	return nil
}
