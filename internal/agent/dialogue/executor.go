package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	"github.com/kopichat-core-poc/server/internal/agent/tools"
	errx "github.com/kopichat-core-poc/server/internal/core/error"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

// Fixed user-facing strings for the non-collaborator actions and the
// transport-failure tier. Collaborator-reported errors surface verbatim.
const (
	MsgAskOutlet   = "Yes! Which outlet are you referring to?"
	MsgAskCalcExpr = "What would you like to calculate? Example: '5 * 6'"

	MsgCalculatorTrouble = "I'm having trouble reaching the calculator. Please try again later."
	MsgProductTrouble    = "I'm having trouble fetching product info. Please try again later."
	MsgOutletTrouble     = "I'm having trouble fetching outlet info. Please try again later."

	defaultOutletServices = "Dine-in, Takeaway"

	// fixed suffix appended to the outlet slot to bias the directory query
	outletQuerySuffix = " outlet"
)

// Executor dispatches a planned action to the matching collaborator and
// formats the result as the final response string. Every collaborator call
// either fully succeeds or yields exactly one error message; nothing is
// retried.
type Executor struct {
	calculator tools.Calculator
	products   tools.ProductSearcher
	outlets    tools.OutletSearcher
}

func NewExecutor(calculator tools.Calculator, products tools.ProductSearcher, outlets tools.OutletSearcher) *Executor {
	return &Executor{
		calculator: calculator,
		products:   products,
		outlets:    outlets,
	}
}

// Execute performs the planned action against the given slots and returns the
// response string plus whether the slots were mutated (the calculator action
// consumes PendingCalcExpr).
func (e *Executor) Execute(ctx context.Context, plan *model.PlannedTurn) (string, bool) {
	switch plan.Action {
	case model.ActionAskCalcExpr:
		return MsgAskCalcExpr, false
	case model.ActionAskOutlet:
		return MsgAskOutlet, false
	case model.ActionExecuteCalculator:
		return e.executeCalculator(ctx, plan), true
	case model.ActionExecuteProducts:
		return e.executeProducts(ctx, plan), false
	case model.ActionExecuteOutlets:
		return e.executeOutlets(ctx, plan), false
	default:
		logx.Warn().Str("action", string(plan.Action)).Msg("Executor received unplannable action")
		return MsgAskCalcExpr, false
	}
}

func (e *Executor) executeCalculator(ctx context.Context, plan *model.PlannedTurn) string {
	expr := plan.Slots.PendingCalcExpr
	plan.Slots.PendingCalcExpr = ""

	result, err := e.calculator.Evaluate(ctx, expr)
	if err != nil {
		return collaboratorMessage(err, MsgCalculatorTrouble)
	}
	return "The result is " + strconv.FormatFloat(result, 'f', -1, 64)
}

func (e *Executor) executeProducts(ctx context.Context, plan *model.PlannedTurn) string {
	// the raw user input is the query, not a reformulation
	answer, err := e.products.Search(ctx, plan.Text)
	if err != nil {
		return collaboratorMessage(err, MsgProductTrouble)
	}
	return answer.Answer
}

func (e *Executor) executeOutlets(ctx context.Context, plan *model.PlannedTurn) string {
	requested := plan.Slots.CurrentOutlet
	results, err := e.outlets.Search(ctx, requested+outletQuerySuffix)
	if err != nil {
		var appErr *errx.AppError
		if errors.As(err, &appErr) {
			// collaborator-reported, including "no results" by convention
			return outletNotFound(requested)
		}
		logx.Error().Err(err).Str("outlet", requested).Msg("outlet search failed")
		return MsgOutletTrouble
	}
	if len(results) == 0 {
		return outletNotFound(requested)
	}
	return formatOutlet(results[0])
}

func outletNotFound(requested string) string {
	return fmt.Sprintf("I couldn't find an outlet matching %q. Try a different name.", requested)
}

func formatOutlet(o model.Outlet) string {
	services := o.Services
	if services == "" {
		services = defaultOutletServices
	}
	return fmt.Sprintf("The %s outlet is located at %s. Opening hours: %s. Services: %s.",
		o.Name, o.Address, o.OpeningHours, services)
}

// collaboratorMessage surfaces a collaborator-reported error verbatim and
// converts anything else (timeouts, connection failures) into the canned
// per-subsystem trouble message.
func collaboratorMessage(err error, troubleMsg string) string {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	logx.Error().Err(err).Msg("collaborator call failed")
	return troubleMsg
}
