package store

import (
	"sync"

	"github.com/dmitrijs2005/taskhub/internal/models"
)

// AuthEvent names an auth state transition.
type AuthEvent string

const (
	EventSignedIn  AuthEvent = "SIGNED_IN"
	EventSignedOut AuthEvent = "SIGNED_OUT"
)

// Listener is called on every auth transition. session is nil on sign-out.
type Listener func(event AuthEvent, session *models.Session)

type listenerEntry struct {
	id uint64
	fn Listener
}

// registry keeps listeners in registration order.
type registry struct {
	mu      sync.Mutex
	next    uint64
	entries []listenerEntry
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) add(fn Listener) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries = append(r.entries, listenerEntry{id: r.next, fn: fn})
	return &Subscription{r: r, id: r.next}
}

func (r *registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// notify calls every listener registered at the time of the call. Each
// gets its own copy of the session.
func (r *registry) notify(event AuthEvent, session *models.Session) {
	r.mu.Lock()
	snapshot := make([]listenerEntry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	for _, e := range snapshot {
		var s *models.Session
		if session != nil {
			c := *session
			s = &c
		}
		e.fn(event, s)
	}
}

// Subscription is the handle returned by OnAuthStateChange.
type Subscription struct {
	r    *registry
	id   uint64
	once sync.Once
}

// Unsubscribe removes the listener. Calling it again has no effect.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.r.remove(s.id) })
}
