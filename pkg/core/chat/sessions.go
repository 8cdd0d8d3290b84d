package chat

import (
	"sync"

	"vendas_insights/pkg/models"

	"github.com/google/uuid"
)

// sessionCap bounds how many turns are retained per session.
const sessionCap = 20

// SessionStore keeps per-session chat history in memory so clients can
// continue a conversation by id instead of re-sending the transcript.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]models.ChatMessage
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]models.ChatMessage)}
}

// Touch returns the session id, minting a fresh one when the client
// did not send any.
func (s *SessionStore) Touch(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// History returns a copy of the stored turns for a session.
func (s *SessionStore) History(id string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.sessions[id]
	out := make([]models.ChatMessage, len(stored))
	copy(out, stored)
	return out
}

// Append records turns for a session, keeping only the most recent ones.
func (s *SessionStore) Append(id string, msgs ...models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := append(s.sessions[id], msgs...)
	if len(history) > sessionCap {
		history = history[len(history)-sessionCap:]
	}
	s.sessions[id] = history
}
