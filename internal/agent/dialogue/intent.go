package dialogue

import (
	"regexp"
	"strings"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

var (
	calcKeywords    = []string{"add", "subtract", "multiply", "divide", "calculate"}
	productKeywords = []string{"product", "drinkware", "tumbler", "mug", "cup", "bottle", "price", "buy", "sell"}
	outletKeywords  = []string{"outlet", "store", "branch", "location", "opening", "hours", "open"}

	// digits operator digits, e.g. "5*6" or "12 / 4"
	arithmeticPattern = regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`)
)

// Classify maps raw input to exactly one intent label. Precedence is fixed:
// calculate, then product, then outlet, then unknown. First matching rule wins.
func Classify(text string) model.Intent {
	lower := strings.ToLower(text)

	if containsAny(lower, calcKeywords) || arithmeticPattern.MatchString(text) {
		return model.IntentCalculate
	}
	if containsAny(lower, productKeywords) {
		return model.IntentProduct
	}
	if containsAny(lower, outletKeywords) || outletPattern.MatchString(text) || cityPattern.MatchString(text) {
		return model.IntentOutlet
	}
	return model.IntentUnknown
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
