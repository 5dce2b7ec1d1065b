package dispatch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one connected dashboard's subscription. Events are delivered
// through a buffered FIFO channel, so each session observes transitions for a
// given request id in the order they were accepted.
type Session struct {
	id       uuid.UUID
	filter   Filter
	events   chan Envelope
	mu       sync.Mutex
	closed   bool
	lastSeen time.Time
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Filter() Filter {
	return s.filter
}

// Events is the session's ordered stream. The channel is closed when the
// session is deregistered.
func (s *Session) Events() <-chan Envelope {
	return s.events
}

// Touch records transport-level liveness (e.g. a websocket pong). Sessions
// not touched within the registry's liveness timeout are swept.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// send enqueues without blocking. Returns false when the session is closed or
// its buffer is full; a full buffer means the subscriber is lagging and must
// resynchronize with a full re-fetch.
func (s *Session) send(env Envelope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.events <- env:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry tracks which connected dashboard sessions should receive which
// events. Registration happens on connect, deregistration on disconnect;
// abrupt network loss is handled by the liveness sweep.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	buffer   int
	liveness time.Duration
	logger   *slog.Logger
	clock    func() time.Time
}

func NewRegistry(buffer int, liveness time.Duration, logger *slog.Logger) *Registry {
	if buffer < 1 {
		buffer = 1
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		buffer:   buffer,
		liveness: liveness,
		logger:   logger,
		clock:    time.Now,
	}
}

func (r *Registry) Subscribe(filter Filter) *Session {
	s := &Session{
		id:       uuid.New(),
		filter:   filter,
		events:   make(chan Envelope, r.buffer),
		lastSeen: r.clock(),
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.logger.Info("dashboard session subscribed",
		"session_id", s.id,
		"kind", filter.Kind.String(),
		"department", filter.Department.String(),
	)
	return s
}

func (r *Registry) Unsubscribe(s *Session) {
	r.mu.Lock()
	_, known := r.sessions[s.id]
	delete(r.sessions, s.id)
	r.mu.Unlock()

	s.close()
	if known {
		r.logger.Info("dashboard session unsubscribed", "session_id", s.id)
	}
}

// Sweep deregisters sessions whose transport has not shown liveness within
// the timeout. Returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.clock()
	var stale []*Session

	r.mu.RLock()
	for _, s := range r.sessions {
		if now.Sub(s.seen()) > r.liveness {
			stale = append(stale, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range stale {
		r.logger.Warn("dashboard session timed out, deregistering", "session_id", s.id)
		r.Unsubscribe(s)
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// matching snapshots the sessions whose filter accepts the envelope.
func (r *Registry) matching(env Envelope) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Session
	for _, s := range r.sessions {
		if s.filter.Matches(env) {
			matched = append(matched, s)
		}
	}
	return matched
}
