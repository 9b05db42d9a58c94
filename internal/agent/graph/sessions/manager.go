package sessions

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

// Manager mediates all session-state access for the turn graph: slot
// load/save, fallback-context assembly, and transcript appends. Components
// never touch the repository directly.
type Manager struct {
	repo               model.SessionRepository
	transcriptMaxTurns int
}

func NewManager(repo model.SessionRepository, config model.SessionConfig) *Manager {
	return &Manager{
		repo:               repo,
		transcriptMaxTurns: config.Transcript.MaxTurns,
	}
}

func (m *Manager) LoadSlots(ctx context.Context, sessionID string) (model.Slots, error) {
	return m.repo.LoadSlots(ctx, sessionID)
}

func (m *Manager) SaveSlots(ctx context.Context, sessionID string, slots model.Slots) error {
	return m.repo.SaveSlots(ctx, sessionID, slots)
}

// BuildFallbackContext assembles the prompt for a language-model fallback
// turn: system prompt, the most recent transcript turns, then the current
// user input. The input is not persisted here; the exchange is saved only
// after the model answers.
func (m *Manager) BuildFallbackContext(ctx context.Context, sessionID, systemPrompt, userInput string) ([]*schema.Message, error) {
	transcript, err := m.repo.LoadTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(transcript)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, trimTail(transcript, m.transcriptMaxTurns)...)
	messages = append(messages, schema.UserMessage(userInput))
	return messages, nil
}

// SaveExchange appends one completed (user, assistant) fallback exchange to
// the transcript.
func (m *Manager) SaveExchange(ctx context.Context, sessionID, userInput, response string) error {
	if err := m.repo.AppendMessage(ctx, sessionID, schema.UserMessage(userInput)); err != nil {
		return err
	}
	return m.repo.AppendMessage(ctx, sessionID, schema.AssistantMessage(response, nil))
}

// Reset clears both the slot record and the transcript for a session.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	return m.repo.Clear(ctx, sessionID)
}

// MessageCount reports the transcript length for a session.
func (m *Manager) MessageCount(ctx context.Context, sessionID string) (int, error) {
	return m.repo.MessageCount(ctx, sessionID)
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
