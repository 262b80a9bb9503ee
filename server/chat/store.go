package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store keeps one transcript per browser session in memory.
type Store struct {
	mu          sync.Mutex
	transcripts map[string]*Transcript
	idle        time.Duration
	now         func() time.Time
}

func NewStore(idle time.Duration) *Store {
	return &Store{
		transcripts: make(map[string]*Transcript),
		idle:        idle,
		now:         time.Now,
	}
}

// Get returns the transcript of the session, creating an empty one on first use.
func (s *Store) Get(sessionID string) *Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transcripts[sessionID]
	if !ok {
		t = &Transcript{}
		s.transcripts[sessionID] = t
	}
	t.mu.Lock()
	t.lastUsed = s.now()
	t.mu.Unlock()
	return t
}

// Peek returns the transcript without creating or touching it.
func (s *Store) Peek(sessionID string) *Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcripts[sessionID]
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transcripts, sessionID)
}

func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	var evicted int
	for id, t := range s.transcripts {
		t.mu.Lock()
		lastUsed := t.lastUsed
		t.mu.Unlock()
		if lastUsed.Before(cutoff) {
			delete(s.transcripts, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				slog.DebugContext(ctx, "Evicted idle chat transcripts", slog.Int("count", n))
			}
		}
	}
}
