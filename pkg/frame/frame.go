// Package frame provides display-frame scheduling: a Requester that runs
// callbacks on the next frame tick, drivers for it, and Slot, a one-slot
// coalescer that turns a high-frequency input stream into at most one commit
// per frame.
package frame

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Handle identifies a requested frame callback. The zero Handle is never
// issued.
type Handle uint64

// Requester schedules callbacks for the next display frame.
type Requester interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

// Queue is a Requester whose frames advance only when Tick is called. It is
// the frame source for headless use and tests; Ticker drives one from a clock.
type Queue struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]func())}
}

// RequestFrame implements Requester.
func (q *Queue) RequestFrame(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame implements Requester. Unknown handles are ignored.
func (q *Queue) CancelFrame(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// Len returns the number of callbacks waiting for the next tick.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Tick runs every callback requested before the call, in request order, and
// returns how many ran. Callbacks requested while ticking wait for the next
// tick.
func (q *Queue) Tick() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	fns := make([]func(), 0, len(order))
	for _, h := range order {
		if fn, ok := q.pending[h]; ok {
			fns = append(fns, fn)
			delete(q.pending, h)
		}
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Ticker drives a Queue at a fixed frame rate.
type Ticker struct {
	*Queue
	interval time.Duration
}

// NewTicker returns a driver ticking fps times per second. fps <= 0 uses 60.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		Queue:    NewQueue(),
		interval: time.Second / time.Duration(fps),
	}
}

// Interval returns the frame period.
func (t *Ticker) Interval() time.Duration { return t.interval }

// Run ticks until ctx is done and returns ctx.Err().
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			t.Tick()
		}
	}
}

// Mode selects which submission a Slot commits when several arrive within
// one frame.
type Mode int

const (
	// LatestWins commits the most recent submission at fire time.
	LatestWins Mode = iota
	// KeepFirst commits the value latched when the frame was requested and
	// drops later submissions until it fires.
	KeepFirst
)

func (m Mode) String() string {
	switch m {
	case LatestWins:
		return "latest"
	case KeepFirst:
		return "first"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "latest" or "first".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "latest", "":
		return LatestWins, nil
	case "first":
		return KeepFirst, nil
	}
	return 0, fmt.Errorf("unknown coalescing mode %q (want latest or first)", s)
}
