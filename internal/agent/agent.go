package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/kopichat-core-poc/server/internal/agent/graph"
	"github.com/kopichat-core-poc/server/internal/agent/graph/sessions"
	"github.com/kopichat-core-poc/server/internal/agent/model"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

const msgEmptyInput = "Please type a message so I can help."

// Agent is the public turn boundary over the compiled graph. A turn either
// completes with a response or is converted here, exactly once, into a
// user-visible apology; failures are never fatal to the session.
type Agent struct {
	runner   graph.Runner
	sessions *sessions.Manager
}

func New(runner graph.Runner, sessionsManager *sessions.Manager) *Agent {
	return &Agent{runner: runner, sessions: sessionsManager}
}

// Build composes the full turn graph from config and wraps it as an Agent.
func Build(ctx context.Context, cfg graph.Config) (*Agent, error) {
	runner, err := graph.BuildTurnGraph(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(runner, sessions.NewManager(cfg.SessionRepo, cfg.Session)), nil
}

// ProcessTurn runs one user turn against the keyed session and always
// returns a user-facing response string. Callers are responsible for
// serializing concurrent turns on the same session.
func (a *Agent) ProcessTurn(ctx context.Context, sessionID, text string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("session_id", sessionID).Msgf("panic recovered in turn: %v", r)
			response = apology(fmt.Errorf("%v", r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		return msgEmptyInput
	}

	out, err := a.runner.Invoke(ctx, model.TurnInput{SessionID: sessionID, Text: text})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Turn failed")
		return apology(err)
	}
	return out
}

// Reset clears the session's slots and transcript, returning it to the state
// of a fresh session.
func (a *Agent) Reset(ctx context.Context, sessionID string) error {
	return a.sessions.Reset(ctx, sessionID)
}

func apology(err error) string {
	return fmt.Sprintf("Sorry, I ran into an unexpected error: %v. Please try again.", err)
}
