package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Slots is the accumulated conversational context for one session. Slot values
// are only ever overwritten by a newer match; changing topic leaves stale
// values in place until the session is reset.
type Slots struct {
	CurrentCity     string `json:"current_city,omitempty"`
	CurrentOutlet   string `json:"current_outlet,omitempty"`
	LastIntent      Intent `json:"last_intent,omitempty"`
	LastUserInput   string `json:"last_user_input,omitempty"`
	PendingCalcExpr string `json:"pending_calc_expr,omitempty"`
}

// SessionRepository persists per-session slots and the fallback transcript.
// Sessions are keyed by an explicit session ID supplied by the caller; a
// session that was never written loads as zero values.
type SessionRepository interface {
	// LoadSlots retrieves the slot record for a session. Missing sessions
	// return a zero-valued Slots, not an error.
	LoadSlots(ctx context.Context, sessionID string) (Slots, error)

	// SaveSlots replaces the slot record for a session.
	SaveSlots(ctx context.Context, sessionID string, slots Slots) error

	// AppendMessage appends one message to the session transcript.
	AppendMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadTranscript retrieves the full transcript for a session in order.
	LoadTranscript(ctx context.Context, sessionID string) ([]*schema.Message, error)

	// MessageCount returns the number of transcript messages for a session.
	MessageCount(ctx context.Context, sessionID string) (int, error)

	// Clear removes all state (slots and transcript) for a session.
	Clear(ctx context.Context, sessionID string) error
}
