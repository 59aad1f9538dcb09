package appstate

import (
	"sync"
	"time"
)

// NotificationTTL is the display window of a notification before the
// store removes it automatically.
const NotificationTTL = 5 * time.Second

// Store applies UI actions one at a time, in dispatch order, and owns the
// auto-expiry of notifications.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	// ttl is overridable in tests; zero means NotificationTTL.
	ttl time.Duration
}

func NewStore() *Store {
	return &Store{state: Initial(), subs: map[int]func(State){}}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action synchronously and returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
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
func (s *Store) Subscribe(fn func(State)) func() {
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

// Notify enqueues a notification and schedules its removal after the
// display window. Removal is idempotent, so an explicit dismissal racing
// the timer is harmless. Returns the generated id.
func (s *Store) Notify(kind, message string) string {
	next := s.Dispatch(AddNotification{Type: kind, Message: message})

	list := next.Notifications
	if len(list) == 0 {
		return ""
	}
	id := list[len(list)-1].ID

	ttl := s.ttl
	if ttl <= 0 {
		ttl = NotificationTTL
	}
	time.AfterFunc(ttl, func() {
		s.Dispatch(RemoveNotification{ID: id})
	})
	return id
}

// Dismiss removes a notification ahead of its timer.
func (s *Store) Dismiss(id string) {
	s.Dispatch(RemoveNotification{ID: id})
}
