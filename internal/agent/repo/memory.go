package repo

import (
	"context"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

type memorySession struct {
	slots      model.Slots
	transcript []*schema.Message
	deadline   time.Time
}

// MemorySessionRepository is an in-process keyed session store for tests and
// local runs without Redis. Sessions expire lazily: an entry past its
// deadline is dropped on the next access. Safe for concurrent use.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// get returns the live session entry, evicting it first when expired.
// Callers must hold mu.
func (r *MemorySessionRepository) get(sessionID string) *memorySession {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	if r.ttl > 0 && r.now().After(s.deadline) {
		delete(r.sessions, sessionID)
		return nil
	}
	return s
}

// ensure returns the live session entry, creating it when absent.
// Callers must hold mu.
func (r *MemorySessionRepository) ensure(sessionID string) *memorySession {
	if s := r.get(sessionID); s != nil {
		s.deadline = r.now().Add(r.ttl)
		return s
	}
	s := &memorySession{deadline: r.now().Add(r.ttl)}
	r.sessions[sessionID] = s
	return s
}

func (r *MemorySessionRepository) LoadSlots(ctx context.Context, sessionID string) (model.Slots, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.get(sessionID); s != nil {
		return s.slots, nil
	}
	return model.Slots{}, nil
}

func (r *MemorySessionRepository) SaveSlots(ctx context.Context, sessionID string, slots model.Slots) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(sessionID).slots = slots
	return nil
}

func (r *MemorySessionRepository) AppendMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.ensure(sessionID)
	s.transcript = append(s.transcript, message)
	return nil
}

func (r *MemorySessionRepository) LoadTranscript(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.get(sessionID)
	if s == nil {
		return []*schema.Message{}, nil
	}
	out := make([]*schema.Message, len(s.transcript))
	copy(out, s.transcript)
	return out, nil
}

func (r *MemorySessionRepository) MessageCount(ctx context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.get(sessionID); s != nil {
		return len(s.transcript), nil
	}
	return 0, nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
