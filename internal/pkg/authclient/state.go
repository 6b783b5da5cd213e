package authclient

import "sync"

// Snapshot is the auth state handed to listeners.
type Snapshot struct {
	CurrentUser   *string
	Authenticated bool
	Role          string
}

// State holds the observable auth values. Listeners run synchronously, in
// subscription order, on every publish.
type State struct {
	mu        sync.RWMutex
	snap      Snapshot
	listeners map[int]func(Snapshot)
	order     []int
	nextID    int
}

func newState(initial Snapshot) *State {
	return &State{
		snap:      initial,
		listeners: map[int]func(Snapshot){},
	}
}

func (s *State) CurrentUser() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.CurrentUser
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Authenticated
}

func (s *State) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Role
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Subscribe registers fn and returns a func that removes it.
func (s *State) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *State) publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	fns := make([]func(Snapshot), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
