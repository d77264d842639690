/*
Package pubsub implements the observation model for engine state.

PURPOSE:
  A Subject is a current-value-plus-subsequent-updates stream: a new
  subscriber immediately receives the latest published value (replay),
  then every subsequent publish (push). The request store and directory
  expose their collections and the session through Subjects.

DELIVERY SEMANTICS:
  Publishing never blocks. Each subscriber has a one-slot buffer and
  intermediate values are conflated: a slow subscriber may skip snapshots
  but always eventually observes the latest one. Since published values
  are full collection snapshots, skipping an intermediate snapshot loses
  nothing - the latest value is the complete state.

USAGE:
  s := pubsub.NewSubject[int]()
  s.Publish(1)
  ch, cancel := s.Subscribe() // immediately yields 1
  defer cancel()
  s.Publish(2)                // ch yields 2
*/
package pubsub

import "sync"

// =============================================================================
// SUBJECT - Replay-latest-then-push value stream
// =============================================================================

type Subject[T any] struct {
	mu       sync.Mutex
	current  T
	hasValue bool
	subs     map[int]chan T
	nextID   int
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]chan T)}
}

// NewSubjectWithValue creates a Subject that already holds a value to
// replay to the first subscribers.
func NewSubjectWithValue[T any](initial T) *Subject[T] {
	s := NewSubject[T]()
	s.current = initial
	s.hasValue = true
	return s
}

// Publish stores v as the current value and pushes it to all subscribers.
// Never blocks; see the conflation note in the package comment.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = v
	s.hasValue = true
	for _, ch := range s.subs {
		offer(ch, v)
	}
}

// Subscribe registers a new subscriber. If a value has been published the
// channel immediately carries it. cancel removes the subscription and
// closes the channel; it is safe to call more than once.
func (s *Subject[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan T, 1)
	if s.hasValue {
		ch <- s.current
	}
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Current returns the latest published value, if any.
func (s *Subject[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasValue
}

// offer replaces whatever is buffered with v so the subscriber always
// sees the newest value.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
