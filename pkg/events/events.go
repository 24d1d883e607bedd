// Package events records editor events in a bounded in-memory log and fans
// them out to subscribers and durable sinks.
package events

import (
	"log"
	"sync"
	"time"

	"github.com/ChicagoDave/massing/internal/pkg/clock"
)

// DefaultCapacity is the number of events a Log retains.
const DefaultCapacity = 200

// Event types
const (
	TransformGoOnTop     = "transform.goOnTop"
	TransformRotate      = "transform.rotate.change"
	TransformEnd         = "transform.end"
	ViewerZoomToFit      = "viewer.zoomToFit"
	SourceTransformGizmo = "transform-gizmo"
	SourceViewer         = "viewer"
)

// Event is one recorded editor event.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives every event after it is recorded.
type Sink interface {
	Write(v any) error
}

// Log is a bounded, oldest-first event log. The zero value is not usable;
// call NewLog.
type Log struct {
	clock    clock.Clock
	capacity int
	logger   *log.Logger

	mu     sync.Mutex
	events []Event
	last   *Event
	seq    uint64
	sinks  []Sink
	subs   map[chan Event]struct{}
}

// NewLog returns an empty log retaining capacity events. capacity <= 0 uses
// DefaultCapacity; a nil clock uses the wall clock and a nil logger discards
// sink failures.
func NewLog(capacity int, clk clock.Clock, logger *log.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Log{
		clock:    clk,
		capacity: capacity,
		logger:   logger,
		subs:     make(map[chan Event]struct{}),
	}
}

// AddSink registers s to receive every later event.
func (l *Log) AddSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// Emit appends an event, evicting the oldest when the log is full, and
// returns it.
func (l *Log) Emit(typ, source string, payload any) Event {
	l.mu.Lock()
	l.seq++
	ev := Event{
		Seq:       l.seq,
		Type:      typ,
		Source:    source,
		Payload:   payload,
		Timestamp: l.clock.Now(),
	}
	if len(l.events) == l.capacity {
		copy(l.events, l.events[1:])
		l.events = l.events[:len(l.events)-1]
	}
	l.events = append(l.events, ev)
	last := ev
	l.last = &last

	sinks := append([]Sink(nil), l.sinks...)
	for ch := range l.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber; drop rather than block the editor
		}
	}
	l.mu.Unlock()

	for _, s := range sinks {
		if err := s.Write(ev); err != nil && l.logger != nil {
			l.logger.Printf("event sink: %s #%d: %v", ev.Type, ev.Seq, err)
		}
	}
	return ev
}

// Events returns a copy of the retained events, oldest first.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// Last returns the most recent event.
func (l *Log) Last() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil {
		return Event{}, false
	}
	return *l.last, true
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Subscribe returns a channel receiving events emitted after the call, and a
// function that unsubscribes and closes it. Events are dropped for a
// subscriber whose buffer is full.
func (l *Log) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, ch)
			l.mu.Unlock()
			close(ch)
		})
	}
}
