package sessions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	"github.com/kopichat-core-poc/server/internal/agent/repo"
)

func newTestManager(maxTurns int) *Manager {
	cfg := model.SessionConfig{TTL: "30m"}
	cfg.Transcript.MaxTurns = maxTurns
	return NewManager(repo.NewMemorySessionRepository(time.Minute), cfg)
}

func TestBuildFallbackContextOrdering(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(20)

	require.NoError(t, m.SaveExchange(ctx, "s1", "tell me a joke", "Why did the coffee file a police report? It got mugged."))

	messages, err := m.BuildFallbackContext(ctx, "s1", "You are a helpful barista.", "another one")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Equal(t, "You are a helpful barista.", messages[0].Content)
	assert.Equal(t, schema.User, messages[1].Role)
	assert.Equal(t, "tell me a joke", messages[1].Content)
	assert.Equal(t, schema.Assistant, messages[2].Role)
	assert.Equal(t, schema.User, messages[3].Role)
	assert.Equal(t, "another one", messages[3].Content)
}

func TestBuildFallbackContextTrimsOldTurns(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(4)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.SaveExchange(ctx, "s1", fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i)))
	}

	messages, err := m.BuildFallbackContext(ctx, "s1", "system", "latest")
	require.NoError(t, err)

	// system + 4 most recent transcript messages + new user input
	require.Len(t, messages, 6)
	assert.Equal(t, "question 3", messages[1].Content)
	assert.Equal(t, "answer 3", messages[2].Content)
	assert.Equal(t, "question 4", messages[3].Content)
	assert.Equal(t, "answer 4", messages[4].Content)
	assert.Equal(t, "latest", messages[5].Content)
}

func TestResetClearsTranscript(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(20)

	require.NoError(t, m.SaveExchange(ctx, "s1", "hi", "hello"))
	n, err := m.MessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, m.Reset(ctx, "s1"))

	n, err = m.MessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	slots, err := m.LoadSlots(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.Slots{}, slots)
}
