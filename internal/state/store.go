package state

import (
	"sync"
	"time"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Status               ServerStatus
	BaseURL              string
	RegistrationEndpoint string
	LastChecked          time.Time
	ConsecutiveFailures  int
	Username             string
	LoggedIn             bool
}

// Update is one status transition published by the poller.
type Update struct {
	Event                StatusEvent
	BaseURL              string
	RegistrationEndpoint string
	At                   time.Time
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Apply runs the transition for u and records probe details.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = NextStatus(s.snapshot.Status, u.Event)
	s.snapshot.BaseURL = u.BaseURL

	switch u.Event {
	case EventProbeSucceeded:
		s.snapshot.RegistrationEndpoint = u.RegistrationEndpoint
		s.snapshot.ConsecutiveFailures = 0
		s.snapshot.LastChecked = u.At
	case EventProbeFailed:
		s.snapshot.RegistrationEndpoint = ""
		s.snapshot.ConsecutiveFailures++
		s.snapshot.LastChecked = u.At
	case EventURLCleared, EventURLChanged:
		s.snapshot.RegistrationEndpoint = ""
		s.snapshot.ConsecutiveFailures = 0
	}
}

// SetSession records who is signed in. An empty username with loggedIn
// true means the token carried no readable name.
func (s *Store) SetSession(username string, loggedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Username = username
	s.snapshot.LoggedIn = loggedIn
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
