package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

func TestExtractSlotsCity(t *testing.T) {
	var slots model.Slots
	ExtractSlots("Is there an outlet in Petaling Jaya?", &slots)

	assert.Equal(t, "Petaling Jaya", slots.CurrentCity)
	assert.Empty(t, slots.CurrentOutlet)
}

func TestExtractSlotsOutlet(t *testing.T) {
	var slots model.Slots
	ExtractSlots("SS 2, what's the opening time?", &slots)

	assert.Equal(t, "SS 2", slots.CurrentOutlet)
	// SS 2 is on both literal lists: the neighbourhood doubles as a city
	assert.Equal(t, "SS 2", slots.CurrentCity)
}

func TestExtractSlotsCaseInsensitive(t *testing.T) {
	var slots model.Slots
	ExtractSlots("is there a store in bangsar?", &slots)

	assert.Equal(t, "bangsar", slots.CurrentOutlet)
}

func TestExtractSlotsLastMatchWins(t *testing.T) {
	var slots model.Slots
	ExtractSlots("Should I go to Bangsar or Subang?", &slots)

	assert.Equal(t, "Subang", slots.CurrentOutlet)
}

func TestExtractSlotsNoMatchLeavesPriorValues(t *testing.T) {
	slots := model.Slots{CurrentCity: "Petaling Jaya", CurrentOutlet: "SS 2"}
	ExtractSlots("Tell me a joke", &slots)

	assert.Equal(t, "Petaling Jaya", slots.CurrentCity)
	assert.Equal(t, "SS 2", slots.CurrentOutlet)
}

func TestExtractSlotsOverwritesOnNewMatch(t *testing.T) {
	slots := model.Slots{CurrentOutlet: "SS 2"}
	ExtractSlots("What about Bangsar?", &slots)

	assert.Equal(t, "Bangsar", slots.CurrentOutlet)
}
