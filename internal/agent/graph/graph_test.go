package graph

import (
	"context"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopichat-core-poc/server/internal/agent/dialogue"
	"github.com/kopichat-core-poc/server/internal/agent/graph/nodes"
	"github.com/kopichat-core-poc/server/internal/agent/graph/sessions"
	"github.com/kopichat-core-poc/server/internal/agent/model"
	agentrepo "github.com/kopichat-core-poc/server/internal/agent/repo"
	"github.com/kopichat-core-poc/server/internal/agent/tools"
)

// stubChatModel satisfies the Eino chat model interface with a fixed reply so
// graph tests never touch the network.
type stubChatModel struct {
	reply string
	calls [][]*schema.Message
}

func (s *stubChatModel) Generate(ctx context.Context, in []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	s.calls = append(s.calls, in)
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubChatModel) Stream(ctx context.Context, in []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	s.calls = append(s.calls, in)
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(s.reply, nil)}), nil
}

type testHarness struct {
	runnable compose.Runnable[model.TurnInput, *schema.Message]
	manager  *sessions.Manager
	stub     *stubChatModel
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	stub := &stubChatModel{reply: "Why did the coffee file a police report? It got mugged."}

	cfg := model.SessionConfig{TTL: "30m"}
	cfg.Transcript.MaxTurns = 20
	mgr := sessions.NewManager(agentrepo.NewMemorySessionRepository(30*time.Minute), cfg)

	executor := dialogue.NewExecutor(
		tools.NewExprCalculator(),
		tools.NewCatalogSearch(tools.DefaultCatalog),
		tools.NewOutletDirectory(tools.DefaultOutlets),
	)

	runnable, err := BuildGraph(context.Background(), &GraphConfig{
		ChatModel:         &nodes.ChatModels{Fallback: stub, FallbackModelName: "stub-model"},
		SessionsManager:   mgr,
		Executor:          executor,
		FallbackPromptCfg: &model.FallbackPromptConfig{BusinessType: "coffee chain", BusinessName: "ZUS Coffee"},
	})
	require.NoError(t, err)

	return &testHarness{runnable: runnable, manager: mgr, stub: stub}
}

func (h *testHarness) turn(t *testing.T, sessionID, text string) string {
	t.Helper()
	out, err := h.runnable.Invoke(context.Background(), model.TurnInput{SessionID: sessionID, Text: text})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out.Content
}

func TestGraphClarifiesMissingOutlet(t *testing.T) {
	h := newTestHarness(t)

	response := h.turn(t, "s1", "Is there an outlet in Petaling Jaya?")
	assert.Equal(t, dialogue.MsgAskOutlet, response)

	slots, err := h.manager.LoadSlots(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Petaling Jaya", slots.CurrentCity)
	assert.Empty(t, slots.CurrentOutlet)
}

func TestGraphAnswersOutletHoursAcrossTurns(t *testing.T) {
	h := newTestHarness(t)

	h.turn(t, "s1", "Is there an outlet in Petaling Jaya?")
	response := h.turn(t, "s1", "SS 2, whats the opening time?")

	assert.Contains(t, response, "SS 2")
	assert.Contains(t, response, "8:00AM - 10:00PM")

	// "SS 2" is on both literal lists, so the second turn overwrites the city too
	slots, err := h.manager.LoadSlots(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "SS 2", slots.CurrentCity)
	assert.Equal(t, "SS 2", slots.CurrentOutlet)

	// deterministic turns never touch the transcript
	n, err := h.manager.MessageCount(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGraphCalculates(t *testing.T) {
	h := newTestHarness(t)

	response := h.turn(t, "s1", "Calculate 5 * 6")
	assert.Equal(t, "The result is 30", response)

	// expression is consumed once evaluated
	slots, err := h.manager.LoadSlots(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, slots.PendingCalcExpr)
}

func TestGraphAsksForExpression(t *testing.T) {
	h := newTestHarness(t)

	response := h.turn(t, "s1", "Calculate")
	assert.Equal(t, dialogue.MsgAskCalcExpr, response)
}

func TestGraphProductLookup(t *testing.T) {
	h := newTestHarness(t)

	response := h.turn(t, "s1", "Do you sell any tumblers?")
	assert.Contains(t, response, "Here's what I found:")
	assert.Contains(t, response, "tumbler")
	assert.Contains(t, response, "RM ")
}

func TestGraphFallsBackToModel(t *testing.T) {
	h := newTestHarness(t)

	response := h.turn(t, "s1", "tell me a joke")
	assert.Equal(t, h.stub.reply, response)

	// the fallback prompt carries the rendered system message and the input
	require.Len(t, h.stub.calls, 1)
	prompt := h.stub.calls[0]
	require.NotEmpty(t, prompt)
	assert.Equal(t, schema.System, prompt[0].Role)
	assert.Contains(t, prompt[0].Content, "ZUS Coffee")
	assert.Equal(t, "tell me a joke", prompt[len(prompt)-1].Content)

	// only fallback turns are transcribed, as one user/assistant pair
	n, err := h.manager.MessageCount(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGraphFallbackRemembersConversation(t *testing.T) {
	h := newTestHarness(t)

	h.turn(t, "s1", "tell me a joke")
	h.turn(t, "s1", "another one")

	require.Len(t, h.stub.calls, 2)
	second := h.stub.calls[1]

	// system + first exchange + new input
	require.Len(t, second, 4)
	assert.Equal(t, "tell me a joke", second[1].Content)
	assert.Equal(t, h.stub.reply, second[2].Content)
	assert.Equal(t, "another one", second[3].Content)
}

func TestGraphResetForgetsEverything(t *testing.T) {
	h := newTestHarness(t)

	h.turn(t, "s1", "Is there an outlet in Petaling Jaya?")
	h.turn(t, "s1", "tell me a joke")
	require.NoError(t, h.manager.Reset(context.Background(), "s1"))

	slots, err := h.manager.LoadSlots(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.Slots{}, slots)

	// the same opening turn behaves identically after a reset
	response := h.turn(t, "s1", "Is there an outlet in Petaling Jaya?")
	assert.Equal(t, dialogue.MsgAskOutlet, response)
}

func TestGraphSessionsAreIsolated(t *testing.T) {
	h := newTestHarness(t)

	h.turn(t, "s1", "Is there an outlet in Petaling Jaya?")
	response := h.turn(t, "s2", "whats the opening time?")

	// s2 never named an outlet, so it gets the clarification question
	assert.Equal(t, dialogue.MsgAskOutlet, response)
}
