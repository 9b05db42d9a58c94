package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{"calculate keyword", "Calculate 5 * 6", model.IntentCalculate},
		{"calculate keyword alone", "Calculate", model.IntentCalculate},
		{"arithmetic pattern without keyword", "What is 12/4?", model.IntentCalculate},
		{"spelled operator", "Can you add 3 and 4?", model.IntentCalculate},
		{"product keyword", "What tumblers do you offer?", model.IntentProduct},
		{"product price keyword", "How much does the OG cup cost, what's the price?", model.IntentProduct},
		{"outlet keyword", "Is there an outlet in Petaling Jaya?", model.IntentOutlet},
		{"hours keyword", "What are the opening hours?", model.IntentOutlet},
		{"outlet literal only", "What about Damansara?", model.IntentOutlet},
		{"city literal only", "Anything in Kuala Lumpur?", model.IntentOutlet},
		{"no match", "Tell me a joke", model.IntentUnknown},
		{"greeting", "Hello!", model.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

// calculate outranks product even when both keyword sets match
func TestClassifyPrecedence(t *testing.T) {
	assert.Equal(t, model.IntentCalculate, Classify("Calculate the price of 2 * 3 mugs"))
	assert.Equal(t, model.IntentProduct, Classify("Do you sell mugs at the SS 2 outlet?"))
}
