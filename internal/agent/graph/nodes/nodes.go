package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/kopichat-core-poc/server/internal/agent/dialogue"
	"github.com/kopichat-core-poc/server/internal/agent/graph/prompts"
	"github.com/kopichat-core-poc/server/internal/agent/graph/sessions"
	"github.com/kopichat-core-poc/server/internal/agent/model"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

// Node keys for the turn graph.
const (
	NodeSlotIntake        = "slot_intake"
	NodeActionExecutor    = "action_executor"
	NodePromptAssembler   = "prompt_assembler"
	NodeFallbackChatModel = "fallback_chat_model"
)

// NewSlotIntakePreHandler records the turn identity into graph state and
// resets the per-turn cost accumulator.
func NewSlotIntakePreHandler() func(context.Context, model.TurnInput, *model.TurnState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.TurnState) (model.TurnInput, error) {
		s.SessionID = in.SessionID
		s.Input = in.Text
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewSlotIntakeNode runs the turn's deterministic front half: load slots,
// extract place names, classify intent, plan the action, and persist the
// updated slot record.
func NewSlotIntakeNode(mgr *sessions.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (model.PlannedTurn, error) {
		slots, err := mgr.LoadSlots(ctx, in.SessionID)
		if err != nil {
			return model.PlannedTurn{}, fmt.Errorf("load session slots: %w", err)
		}

		dialogue.ExtractSlots(in.Text, &slots)
		intent := dialogue.Classify(in.Text)
		slots.LastIntent = intent
		slots.LastUserInput = in.Text
		action := dialogue.Plan(intent, in.Text, &slots)

		if err := mgr.SaveSlots(ctx, in.SessionID, slots); err != nil {
			return model.PlannedTurn{}, fmt.Errorf("save session slots: %w", err)
		}

		logx.Debug().
			Str("session_id", in.SessionID).
			Str("intent", string(intent)).
			Str("action", string(action)).
			Str("current_city", slots.CurrentCity).
			Str("current_outlet", slots.CurrentOutlet).
			Msg("Turn planned")

		return model.PlannedTurn{
			SessionID: in.SessionID,
			Text:      in.Text,
			Intent:    intent,
			Action:    action,
			Slots:     slots,
		}, nil
	})
}

// NewActionRouteCondition routes the planned turn: model fallback goes to the
// prompt assembler, every other action to the executor.
func NewActionRouteCondition() func(context.Context, model.PlannedTurn) (string, error) {
	return func(ctx context.Context, plan model.PlannedTurn) (string, error) {
		if plan.Action == model.ActionFallbackModel {
			logx.Debug().Str("session_id", plan.SessionID).Msg("Routing to fallback model")
			return NodePromptAssembler, nil
		}
		logx.Debug().Str("session_id", plan.SessionID).Str("action", string(plan.Action)).
			Msg("Routing to action executor")
		return NodeActionExecutor, nil
	}
}

// NewActionExecutorNode dispatches the planned action to its collaborator
// and persists the slot record again when execution consumed a slot.
func NewActionExecutorNode(mgr *sessions.Manager, executor *dialogue.Executor) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, plan model.PlannedTurn) (*schema.Message, error) {
		response, slotsChanged := executor.Execute(ctx, &plan)

		if slotsChanged {
			if err := mgr.SaveSlots(ctx, plan.SessionID, plan.Slots); err != nil {
				logx.Error().Err(err).Str("session_id", plan.SessionID).
					Msg("Error saving slots after action execution")
			}
		}

		return schema.AssistantMessage(response, nil), nil
	})
}

// NewPromptAssemblerNode builds the fallback prompt: rendered system prompt,
// recent transcript, and the current user input.
func NewPromptAssemblerNode(mgr *sessions.Manager, promptConfig *model.FallbackPromptConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, plan model.PlannedTurn) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderFallbackSystem(ctx, *promptConfig)
		if err != nil {
			return nil, fmt.Errorf("render fallback system prompt: %w", err)
		}
		return mgr.BuildFallbackContext(ctx, plan.SessionID, systemPrompt, plan.Text)
	})
}

// NewFallbackChatModelPostHandler computes usage cost for the fallback model
// call and appends the completed exchange to the session transcript.
func NewFallbackChatModelPostHandler(
	mgr *sessions.Manager,
	modelName string,
) func(context.Context, *schema.Message, *model.TurnState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.TurnState) (*schema.Message, error) {
		if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			pricing := model.ResolvePricing(modelName)
			inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
			state.TotalCostUSD += totalC
			logx.Debug().
				Str("session_id", state.SessionID).
				Str("node", NodeFallbackChatModel).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", state.TotalCostUSD).
				Msg("LLM usage")
		}

		if out != nil && strings.TrimSpace(out.Content) != "" {
			if err := mgr.SaveExchange(ctx, state.SessionID, state.Input, out.Content); err != nil {
				logx.Error().Err(err).Str("session_id", state.SessionID).
					Msg("Error saving fallback exchange to transcript")
			}
		}

		return out, nil
	}
}
