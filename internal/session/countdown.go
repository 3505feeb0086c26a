package session

import (
	"sync"
	"time"
)

// DefaultQuestionTime is the per-question limit used when the countdown is enabled.
const DefaultQuestionTime = 30 * time.Second

// Tick is one countdown event. Generation identifies the Start call that
// produced it; ticks from an earlier generation are stale.
type Tick struct {
	Generation uint64
	Remaining  time.Duration
	Expired    bool
}

// Countdown emits a Tick every interval until limit elapses. It never calls
// back into the caller: ticks are delivered on Events and the owner's loop
// decides what to do with them, so every state change stays on one goroutine.
type Countdown struct {
	limit    time.Duration
	interval time.Duration
	events   chan Tick

	mu   sync.Mutex
	gen  uint64
	stop chan struct{}
}

func NewCountdown(limit, interval time.Duration) *Countdown {
	if limit <= 0 {
		limit = DefaultQuestionTime
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		limit:    limit,
		interval: interval,
		events:   make(chan Tick, 1),
	}
}

// Events delivers ticks for the running countdown.
func (c *Countdown) Events() <-chan Tick {
	return c.events
}

// Limit is the full duration of one countdown.
func (c *Countdown) Limit() time.Duration {
	return c.limit
}

// Start cancels any running countdown and begins a new one.
func (c *Countdown) Start() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	gen := c.gen
	go c.run(gen, stop)
	return gen
}

// Stop cancels the running countdown. Ticks already in flight become stale.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Current reports whether t belongs to the running countdown.
func (c *Countdown) Current(t Tick) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil && t.Generation == c.gen
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.gen++
}

func (c *Countdown) run(gen uint64, stop <-chan struct{}) {
	remaining := c.limit
	step := c.nextStep(remaining)
	timer := time.NewTimer(step)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}
		remaining -= step
		tick := Tick{Generation: gen, Remaining: remaining, Expired: remaining <= 0}
		select {
		case c.events <- tick:
		case <-stop:
			return
		}
		if tick.Expired {
			return
		}
		step = c.nextStep(remaining)
		timer.Reset(step)
	}
}

// nextStep is one interval, shortened so the last tick lands on the limit.
func (c *Countdown) nextStep(remaining time.Duration) time.Duration {
	if remaining < c.interval {
		return remaining
	}
	return c.interval
}
