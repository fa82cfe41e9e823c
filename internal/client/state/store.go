package state

import (
	"sync"
)

// Store holds the state and applies messages through the reducer. Safe for
// concurrent use, actions dispatch from whatever goroutine finished a call.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

func NewStore() *Store {
	return &Store{
		state: NewState(),
		subs:  map[int]func(State){},
	}
}

// Dispatch runs the message through the reducer and notifies subscribers
// with the resulting state.
func (s *Store) Dispatch(msg Message) {
	s.mu.Lock()
	s.state = Reduce(s.state, msg)
	current := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	// outside the lock so a subscriber can read or dispatch
	for _, sub := range subs {
		sub(current)
	}
}

// State returns the current state value
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener called after every dispatch. The returned
// function removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
