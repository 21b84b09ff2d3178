package agent

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/initializ/websearch/search"
)

func newTestSessions() *Sessions {
	return NewSessions(0, func() *Agent {
		return New(&stubSearcher{results: []search.Result{{Content: "c"}}}, nil)
	})
}

func TestSessions_NewIDForEmpty(t *testing.T) {
	s := newTestSessions()

	id, a := s.Get("")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a UUID, got %q", id)
	}
	if a == nil {
		t.Fatal("expected an agent")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session, got %d", s.Len())
	}
}

func TestSessions_ReusesAgent(t *testing.T) {
	s := newTestSessions()

	id, a := s.Get("")
	a.Process(context.Background(), "hello")

	sameID, same := s.Get(id)
	if sameID != id || same != a {
		t.Error("expected the same agent for the same id")
	}
	if same.History().Len() != 2 {
		t.Errorf("history should persist across lookups, got %d", same.History().Len())
	}
}

func TestSessions_Isolated(t *testing.T) {
	s := newTestSessions()

	_, a := s.Get("")
	_, b := s.Get("")
	a.Process(context.Background(), "only a")

	if b.History().Len() != 0 {
		t.Error("sessions must not share history")
	}
}

func TestSessions_MalformedID(t *testing.T) {
	s := newTestSessions()

	id, _ := s.Get("../../etc/passwd")
	if id == "../../etc/passwd" {
		t.Error("malformed id should be replaced")
	}

	known := uuid.NewString()
	got, _ := s.Get(known)
	if got != known {
		t.Errorf("well-formed id should be kept: got %q", got)
	}
}

func TestSessions_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewSessions(2, func() *Agent {
		return New(&stubSearcher{results: []search.Result{{Content: "c"}}}, nil)
	})

	idA, a := s.Get("")
	idB, _ := s.Get("")
	s.Get(idA) // a is now more recent than b

	s.Get("")
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
	if _, got := s.Get(idA); got != a {
		t.Error("recently used session should survive eviction")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}

	gotID, _ := s.Get(idB)
	if gotID != idB {
		t.Errorf("got id %q, want %q", gotID, idB)
	}
	if s.Len() != 2 {
		t.Errorf("table grew past its limit: %d", s.Len())
	}
}

func TestSessions_DefaultLimit(t *testing.T) {
	s := NewSessions(0, func() *Agent { return New(&stubSearcher{}, nil) })
	for i := 0; i < DefaultMaxSessions+10; i++ {
		s.Get("")
	}
	if s.Len() != DefaultMaxSessions {
		t.Errorf("got %d sessions, want %d", s.Len(), DefaultMaxSessions)
	}
}
