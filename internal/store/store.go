// Package store holds the application state tree. Actions are dispatched into
// a Store, reduced into a new State and broadcast to subscribers; derived views
// are read through memoized selectors.
package store

import (
	"sync"
)

// Store owns the State. It is safe for concurrent use and subscribers may
// dispatch from their callback.
type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   State
	subs    map[int]func(State)
	nextSub int
}

// New creates a store at InitialState reducing through RootReducer wrapped by
// metas, the first one outermost.
func New(metas ...MetaReducer) *Store {
	return &Store{
		reducer: Compose(RootReducer, metas...),
		state:   InitialState(),
		subs:    make(map[int]func(State)),
	}
}

// NewDefault creates a store with logout reset and, outside production,
// action logging
func NewDefault(production bool) *Store {
	return New(WithLogging(production), WithLogoutReset)
}

// Dispatch reduces a and notifies subscribers when the state changed
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, a)
	s.state = next
	var subs []func(State)
	if next != prev {
		subs = make([]func(State), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every new state. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Select evaluates sel against the current state
func Select[T any](s *Store, sel Selector[T]) T {
	st := s.State()
	return sel(&st)
}
