package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/tabcache"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Session is the dashboard state of one browser.
type Session struct {
	ID         string
	Controller *controller.Controller
	// Page holds every region painted for this session, used to render the page.
	Page  *controller.Recorder
	Cache *tabcache.Cache

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry holds the live sessions of the server.
type Registry struct {
	loader *loader.Loader
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions load data through l.
// A non-positive ttl uses DefaultSessionTTL.
func NewRegistry(l *loader.Loader, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		loader:   l,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Start creates a fresh session under id, replacing any existing one.
// An empty id gets a new random one.
func (r *Registry) Start(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	page := controller.NewRecorder()
	cache := tabcache.New(r.loader)
	s := &Session{
		ID:    id,
		Page:  page,
		Cache: cache,
		Controller: controller.New(controller.Options{
			Loader:  r.loader,
			Cache:   cache,
			Painter: page,
			Logger:  r.logger.With("session", id),
		}),
		lastSeen: r.now(),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Lookup returns the live session with id and marks it as used.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Invalidate drops cached datasets of the given tabs in every session.
// No tabs means every tab.
func (r *Registry) Invalidate(tabs ...string) {
	for _, s := range r.snapshot() {
		if len(tabs) == 0 {
			s.Cache.Reset()
			continue
		}
		for _, id := range tabs {
			s.Cache.Invalidate(id)
		}
	}
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("expired idle sessions", "count", removed, "remaining", len(r.sessions))
	}
	return removed
}

// TTL returns the idle expiry of sessions.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
