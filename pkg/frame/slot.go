package frame

import "sync"

// Slot holds at most one pending value. The first Submit while idle requests
// a frame; the frame callback drains the slot into the commit function and
// returns it to idle. Submits while a frame is outstanding never request
// another one.
//
// The Requester must not run callbacks from inside RequestFrame.
type Slot[T any] struct {
	frames Requester
	commit func(T)
	mode   Mode

	mu      sync.Mutex
	value   T
	pending bool
	handle  Handle
	gen     uint64
}

// NewSlot returns an idle slot that commits through commit on frames from r.
func NewSlot[T any](r Requester, mode Mode, commit func(T)) *Slot[T] {
	return &Slot[T]{frames: r, commit: commit, mode: mode}
}

// Submit offers v for the next frame. It reports whether this call requested
// the frame.
func (s *Slot[T]) Submit(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		if s.mode == LatestWins {
			s.value = v
		}
		return false
	}
	s.value = v
	s.pending = true
	s.gen++
	gen := s.gen
	s.handle = s.frames.RequestFrame(func() { s.fire(gen) })
	return true
}

// Pending returns the value waiting for the next frame, if any.
func (s *Slot[T]) Pending() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.pending
}

// Cancel drops the pending value and its frame request. It reports whether
// anything was pending.
func (s *Slot[T]) Cancel() bool {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return false
	}
	h := s.handle
	s.reset()
	s.mu.Unlock()

	s.frames.CancelFrame(h)
	return true
}

func (s *Slot[T]) fire(gen uint64) {
	s.mu.Lock()
	if !s.pending || s.gen != gen {
		s.mu.Unlock()
		return
	}
	v := s.value
	s.reset()
	s.mu.Unlock()

	s.commit(v)
}

func (s *Slot[T]) reset() {
	var zero T
	s.value = zero
	s.pending = false
	s.handle = 0
}
