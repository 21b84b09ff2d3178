package agent

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxSessions bounds the session table when no limit is given.
const DefaultMaxSessions = 1000

type session struct {
	agent    *Agent
	lastUsed uint64
}

// Sessions hands out one Agent per chat session so that concurrent clients
// never share a conversation log. At most limit sessions are kept; the least
// recently used one is dropped to make room.
type Sessions struct {
	mu     sync.Mutex
	agents map[string]*session
	newFn  func() *Agent
	limit  int
	clock  uint64
}

// NewSessions creates a session table holding up to limit agents built with
// newFn. A non-positive limit uses DefaultMaxSessions.
func NewSessions(limit int, newFn func() *Agent) *Sessions {
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &Sessions{agents: make(map[string]*session), newFn: newFn, limit: limit}
}

// Get returns the agent for id, creating it on first use. An empty or
// malformed id is replaced by a fresh UUID; the id actually used is returned.
func (s *Sessions) Get(id string) (string, *Agent) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock++
	if sess, ok := s.agents[id]; ok {
		sess.lastUsed = s.clock
		return id, sess.agent
	}

	if len(s.agents) >= s.limit {
		s.evictOldest()
	}
	a := s.newFn()
	s.agents[id] = &session{agent: a, lastUsed: s.clock}
	return id, a
}

// evictOldest drops the least recently used session. Callers hold s.mu.
func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest uint64
	for id, sess := range s.agents {
		if oldestID == "" || sess.lastUsed < oldest {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.agents, oldestID)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}
