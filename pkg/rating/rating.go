// Package rating encodes a continuous rating into discrete star fill
// states and applies them to star instances.
package rating

import "github.com/atlanticwaters/podfill/models"

// ToFillStates maps a rating to the pod's five star slots. For slot i,
// rating - i >= 0.75 is full and >= 0.25 is half; anything else is
// empty. Total over any real input: out-of-range ratings degrade to
// all-empty or all-full.
func ToFillStates(value float64) []models.FillState {
	states := make([]models.FillState, models.StarSlots)
	for i := range states {
		diff := value - float64(i)
		switch {
		case diff >= 0.75:
			states[i] = models.FillFull
		case diff >= 0.25:
			states[i] = models.FillHalf
		default:
			states[i] = models.FillEmpty
		}
	}
	return states
}

// Variant property spellings tried in order on each star instance. The
// component libraries in circulation disagree on capitalization; both
// failing means that star is skipped.
var fillProperties = []string{"fill", "Fill"}

// ApplyStars sets the fill variant on up to len(states) star instances
// in document order. A star accepting neither spelling is left as-is.
func ApplyStars(stars []models.InstanceNode, states []models.FillState) {
	count := len(stars)
	if len(states) < count {
		count = len(states)
	}
	for i := 0; i < count; i++ {
		for _, property := range fillProperties {
			if err := stars[i].SetVariantProperty(property, string(states[i])); err == nil {
				break
			}
		}
	}
}
