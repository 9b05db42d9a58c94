package model

// Intent is the coarse classification of what the user wants in one turn.
type Intent string

const (
	IntentCalculate Intent = "calculate"
	IntentProduct   Intent = "product"
	IntentOutlet    Intent = "outlet"
	IntentUnknown   Intent = "unknown"
)

// Action is the concrete step planned for an (intent, slots) pair.
type Action string

const (
	ActionAskCalcExpr       Action = "ask_calc_expr"
	ActionAskOutlet         Action = "ask_outlet"
	ActionExecuteCalculator Action = "execute_calculator"
	ActionExecuteProducts   Action = "execute_products"
	ActionExecuteOutlets    Action = "execute_outlets"
	ActionFallbackModel     Action = "fallback_model"
)

// TurnInput represents one user turn against a keyed session.
type TurnInput struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// PlannedTurn is the slot-intake output consumed by the executor branch:
// the classified intent, the planned action, and a snapshot of the session
// slots as persisted for this turn.
type PlannedTurn struct {
	SessionID string
	Text      string
	Intent    Intent
	Action    Action
	Slots     Slots
}

// TurnState stores per-invocation state for the Eino graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers
//     (WithStatePreHandler, WithStatePostHandler, compose.ProcessState),
//     which Eino serializes, so no mutex is required.
//   - Session persistence goes through SessionRepository, never this struct.
type TurnState struct {
	SessionID string
	Input     string

	// Accumulated total LLM cost (USD) across model invocations for this turn
	TotalCostUSD float64
}
