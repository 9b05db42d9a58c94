package dialogue

import (
	"regexp"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

// Known place-name literals for the Klang Valley pilot area. The city list
// deliberately overlaps the outlet list: a neighbourhood mention counts as
// both a city and an outlet reference.
var (
	cityPattern   = regexp.MustCompile(`(?i)(Petaling Jaya|Kuala Lumpur|SS 2|Bangsar|Subang)`)
	outletPattern = regexp.MustCompile(`(?i)(SS 2|Bangsar|Subang|Damansara)`)
)

// ExtractSlots scans raw input for known place names and updates the slot
// record in place. When several literals occur the last one wins; no match
// leaves the previous value untouched.
func ExtractSlots(text string, slots *model.Slots) {
	if m := cityPattern.FindAllString(text, -1); len(m) > 0 {
		slots.CurrentCity = m[len(m)-1]
	}
	if m := outletPattern.FindAllString(text, -1); len(m) > 0 {
		slots.CurrentOutlet = m[len(m)-1]
	}
}
