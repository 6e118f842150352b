// Package events provides the subscribe/notify primitive that stands in for
// browser resize and scroll notifications. Every Subscribe returns the
// matching unsubscribe function; a view must call it on teardown.
package events

import "sync"

// Resize reports the new viewport size in pixels
type Resize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scroll reports the vertical scroll offset in pixels
type Scroll struct {
	Y float64 `json:"y"`
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Signal delivers values to its subscribers in subscription order
type Signal[T any] struct {
	mu     sync.Mutex
	subs   []subscriber[T]
	nextID uint64
	closed bool
}

// NewSignal creates an empty Signal
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || fn == nil {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every current subscriber with v. Subscribers removed by an
// earlier callback during the same Emit are not called.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, sub := range snapshot {
		if !s.subscribed(sub.id) {
			continue
		}
		sub.fn(v)
	}
}

func (s *Signal[T]) subscribed(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of live subscribers
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close drops all subscribers; later Subscribe and Emit calls are no-ops
func (s *Signal[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}
