package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

func TestPlanCalculateWithExpression(t *testing.T) {
	var slots model.Slots
	action := Plan(model.IntentCalculate, "Calculate 5 * 6", &slots)

	assert.Equal(t, model.ActionExecuteCalculator, action)
	assert.Equal(t, "5 * 6", slots.PendingCalcExpr)
}

func TestPlanCalculateWithoutExpression(t *testing.T) {
	var slots model.Slots
	action := Plan(model.IntentCalculate, "Calculate", &slots)

	assert.Equal(t, model.ActionAskCalcExpr, action)
	assert.Empty(t, slots.PendingCalcExpr)
}

func TestPlanProduct(t *testing.T) {
	var slots model.Slots
	assert.Equal(t, model.ActionExecuteProducts, Plan(model.IntentProduct, "What tumblers do you offer?", &slots))
}

func TestPlanOutletWithSlot(t *testing.T) {
	slots := model.Slots{CurrentOutlet: "SS 2"}
	assert.Equal(t, model.ActionExecuteOutlets, Plan(model.IntentOutlet, "What are the opening hours?", &slots))
}

func TestPlanOutletWithoutSlot(t *testing.T) {
	var slots model.Slots
	assert.Equal(t, model.ActionAskOutlet, Plan(model.IntentOutlet, "Is there an outlet in Petaling Jaya?", &slots))
}

func TestPlanUnknown(t *testing.T) {
	var slots model.Slots
	assert.Equal(t, model.ActionFallbackModel, Plan(model.IntentUnknown, "Tell me a joke", &slots))
}

func TestExtractExpression(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"trailing expression", "Calculate 5 * 6", "5 * 6", true},
		{"mid-sentence expression", "What is 12/4 please", "12/4", true},
		{"parenthesised", "calculate (2 + 3) * 4", "(2 + 3) * 4", true},
		{"word spaces do not qualify", "What is the answer", "", false},
		{"digits without operator", "I want 5 tumblers", "", false},
		{"operator without digits", "a + b", "", false},
		{"no expression", "Calculate", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractExpression(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
