package session

import "sync"

// Store applies actions to an AuthState one at a time, in dispatch order.
// Subscribers are invoked after each applied action with the new snapshot.
type Store struct {
	mu     sync.Mutex
	state  AuthState
	subs   map[int]func(AuthState)
	nextID int
}

func NewStore() *Store {
	return &Store{subs: map[int]func(AuthState){}}
}

// State returns the current snapshot.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action synchronously and returns the new state.
func (s *Store) Dispatch(a Action) AuthState {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(AuthState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn func(AuthState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
