package chat

import (
	"sync"

	"github.com/google/uuid"
)

func newSession(id string) Session {
	return Session{
		ID:             id,
		ConversationID: uuid.NewString(),
		State:          StateWelcome,
	}
}

// softReset starts a fresh search in the same chat: contact details are
// kept for easier reordering, everything else is cleared and the
// durable conversation key rotates.
func (s *Session) softReset() {
	*s = Session{
		ID:             s.ID,
		ConversationID: uuid.NewString(),
		State:          StateAskVehicle,
		Phone:          s.Phone,
		Email:          s.Email,
	}
}

// hardReset clears everything and restarts from the welcome menu.
func (s *Session) hardReset() {
	*s = newSession(s.ID)
}

// MemorySessions is the default Sessions implementation. Values are
// copied on the way in and out; callers serialize turns per session.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]Session)}
}

func (m *MemorySessions) Get(id string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = newSession(id)
		m.sessions[id] = s
	}
	return s
}

func (m *MemorySessions) Put(id string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
}
