package dialogue

import (
	"regexp"
	"strings"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

// expressionPattern matches runs of arithmetic characters. A candidate run
// only counts as an expression when it contains at least one operator and one
// digit, so bare whitespace between words never qualifies.
var expressionPattern = regexp.MustCompile(`[\d+\-*/().\s]+`)

// Plan is a pure mapping from (intent, slot state) to an action. The only
// side effect is staging an extracted arithmetic expression into
// PendingCalcExpr for the calculator action.
func Plan(intent model.Intent, text string, slots *model.Slots) model.Action {
	switch intent {
	case model.IntentCalculate:
		if expr, ok := ExtractExpression(text); ok {
			slots.PendingCalcExpr = expr
			return model.ActionExecuteCalculator
		}
		return model.ActionAskCalcExpr
	case model.IntentProduct:
		return model.ActionExecuteProducts
	case model.IntentOutlet:
		if slots.CurrentOutlet != "" {
			return model.ActionExecuteOutlets
		}
		return model.ActionAskOutlet
	default:
		return model.ActionFallbackModel
	}
}

// ExtractExpression returns the first arithmetic run in the input that holds
// at least one operator and one digit, trimmed of surrounding whitespace.
func ExtractExpression(text string) (string, bool) {
	for _, candidate := range expressionPattern.FindAllString(text, -1) {
		if !strings.ContainsAny(candidate, "+-*/") {
			continue
		}
		if !strings.ContainsAny(candidate, "0123456789") {
			continue
		}
		return strings.TrimSpace(candidate), true
	}
	return "", false
}
