package testkit

import (
	"sort"
	"sync"
	"time"
)

// Timer matches the Stop half of *time.Timer, used by AfterFunc seams
type Timer = interface{ Stop() bool }

// ManualClock is a deterministic AfterFunc scheduler; time only moves on Advance
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	c       *ManualClock
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManualClock returns a clock at offset zero
func NewManualClock() *ManualClock { return &ManualClock{} }

// AfterFunc schedules fn to run on the Advance call that reaches now+d
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{c: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Stop prevents a pending timer from firing, false if it already fired or was stopped
func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d and runs every due callback in deadline order,
// on the calling goroutine; callbacks may schedule further timers
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		if next.at > c.now {
			c.now = next.at
		}
		c.mu.Unlock()
		next.fn()
	}
}

func (c *ManualClock) nextDueLocked(target time.Duration) *manualTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.Slice(live, func(i, j int) bool {
		if live[i].at == live[j].at {
			return live[i].seq < live[j].seq
		}
		return live[i].at < live[j].at
	})
	if len(live) == 0 || live[0].at > target {
		return nil
	}
	return live[0]
}

// Pending reports how many timers are scheduled and not yet stopped or fired
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now reports the elapsed virtual time
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
