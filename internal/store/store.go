package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Store is the application-scoped booking state container. It is
// created once at startup and handed to every view that needs it.
type Store struct {
	mu        sync.Mutex
	state     State
	queue     []Action
	draining  bool
	listeners []*listener
	log       logrus.FieldLogger
}

type listener struct {
	fn func(State)
}

func New(now time.Time, log logrus.FieldLogger) *Store {
	return &Store{
		state: InitialState(now),
		log:   log.WithField("component", "store"),
	}
}

func (s *Store) mustBeValid(op string) {
	if s == nil {
		panic(fmt.Sprintf("store: %s called on a nil booking store; construct one with store.New", op))
	}
}

// Snapshot returns a read-only copy of the current state.
func (s *Store) Snapshot() State {
	s.mustBeValid("Snapshot")
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies actions strictly in submission order. A dispatch made
// while another one is notifying listeners (from a listener or another
// goroutine) is queued and applied by the dispatcher already running.
func (s *Store) Dispatch(a Action) {
	s.mustBeValid("Dispatch")
	if a == nil {
		panic("store: Dispatch called with a nil action")
	}

	s.mu.Lock()
	s.queue = append(s.queue, a)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.state = Reduce(s.state, next)
		s.log.WithField("action", fmt.Sprintf("%T", next)).Debug("Action dispatched")

		snap := s.state.Clone()
		ls := append([]*listener(nil), s.listeners...)
		s.mu.Unlock()
		for _, l := range ls {
			l.fn(snap)
		}
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

// Subscribe registers fn to be called with the new state after every
// applied action. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mustBeValid("Subscribe")
	l := &listener{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.listeners {
			if cur == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store carried by ctx. It panics when ctx has
// none: that is a wiring mistake, not a runtime condition.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		panic("store: FromContext used outside a context created with store.NewContext")
	}
	return s
}
