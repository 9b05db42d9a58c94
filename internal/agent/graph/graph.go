package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/kopichat-core-poc/server/internal/agent/dialogue"
	"github.com/kopichat-core-poc/server/internal/agent/graph/nodes"
	"github.com/kopichat-core-poc/server/internal/agent/graph/observers"
	"github.com/kopichat-core-poc/server/internal/agent/graph/sessions"
	"github.com/kopichat-core-poc/server/internal/agent/model"
	"github.com/kopichat-core-poc/server/internal/agent/tools"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public TurnInput.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (string, error)
}

// Config holds everything needed to compose the full turn graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the chat
// model, the sessions manager, and the in-process collaborators.
type Config struct {
	APIKey         string
	BaseURL        string
	FallbackModel  model.FallbackModelConfig
	FallbackPrompt model.FallbackPromptConfig
	Session        model.SessionConfig
	SessionRepo    model.SessionRepository
}

// GraphConfig holds all components needed to build the graph.
type GraphConfig struct {
	ChatModel         *nodes.ChatModels
	SessionsManager   *sessions.Manager
	Executor          *dialogue.Executor
	FallbackPromptCfg *model.FallbackPromptConfig
}

// GraphBuilder handles the construction of the turn graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.TurnInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.TurnInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// BuildTurnGraph composes the chat model, sessions manager, and default
// collaborators, builds the graph, and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.SessionRepo == nil {
		return nil, fmt.Errorf("session repo is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		FallbackConfig: &cfg.FallbackModel,
	})
	if err != nil {
		return nil, err
	}

	mgr := sessions.NewManager(cfg.SessionRepo, cfg.Session)

	executor := dialogue.NewExecutor(
		tools.NewExprCalculator(),
		tools.NewCatalogSearch(tools.DefaultCatalog),
		tools.NewOutletDirectory(tools.DefaultOutlets),
	)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModel:         cms,
		SessionsManager:   mgr,
		Executor:          executor,
		FallbackPromptCfg: &cfg.FallbackPrompt,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled turn graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.TurnInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModel == nil || config.ChatModel.Fallback == nil {
		return nil, fmt.Errorf("chat model is not properly initialized")
	}
	if config.SessionsManager == nil {
		return nil, fmt.Errorf("sessions manager is nil")
	}
	if config.Executor == nil {
		return nil, fmt.Errorf("executor is nil")
	}
	if config.FallbackPromptCfg == nil {
		return nil, fmt.Errorf("fallback prompt config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.TurnInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
				return &model.TurnState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeSlotIntake,
		nodes.NewSlotIntakeNode(b.config.SessionsManager),
		compose.WithStatePreHandler(nodes.NewSlotIntakePreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeActionExecutor,
		nodes.NewActionExecutorNode(b.config.SessionsManager, b.config.Executor),
	)

	b.graph.AddLambdaNode(nodes.NodePromptAssembler,
		nodes.NewPromptAssemblerNode(b.config.SessionsManager, b.config.FallbackPromptCfg),
	)

	b.graph.AddChatModelNode(nodes.NodeFallbackChatModel,
		nodes.NewFallbackChatModelNode(b.config.ChatModel.Fallback),
		compose.WithStatePostHandler(nodes.NewFallbackChatModelPostHandler(b.config.SessionsManager, b.config.ChatModel.FallbackModelName)),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeSlotIntake},
		{nodes.NodeActionExecutor, compose.END},
		{nodes.NodePromptAssembler, nodes.NodeFallbackChatModel},
		{nodes.NodeFallbackChatModel, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the action routing branch
func (b *GraphBuilder) addBranches() error {
	actionBranch := compose.NewGraphBranch(
		nodes.NewActionRouteCondition(),
		map[string]bool{
			nodes.NodeActionExecutor:  true,
			nodes.NodePromptAssembler: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeSlotIntake, actionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding action routing branch")
		return fmt.Errorf("error adding action routing branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *schema.Message], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
