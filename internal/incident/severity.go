package incident

import (
	"math"
	"strings"
)

const (
	neutralWeight = 0.5

	mandatoryEvacuationWeight = 0.9
	voluntaryEvacuationWeight = 0.5

	// Relief centers are facilities rather than hazards and stay visually quiet.
	reliefCenterWeight = 0.3

	fireAcresCeiling   = 10000.0
	fireSizeShare      = 0.7
	fireContainedShare = 0.3
)

var floodWeights = map[string]float64{
	"major":    0.9,
	"moderate": 0.6,
	"minor":    0.3,
}

// FireWeight scores a wildfire from its size and containment percentage.
// Either input missing yields the neutral weight.
func FireWeight(acres, containment *float64) float64 {
	if acres == nil || containment == nil || math.IsNaN(*acres) || math.IsNaN(*containment) {
		return neutralWeight
	}
	size := math.Min(*acres/fireAcresCeiling, 1)
	uncontained := (100 - *containment) / 100
	return clamp(size*fireSizeShare + uncontained*fireContainedShare)
}

// EvacuationWeight is fixed by whether the order is mandatory.
func EvacuationWeight(mandatory bool) float64 {
	if mandatory {
		return mandatoryEvacuationWeight
	}
	return voluntaryEvacuationWeight
}

// FloodWeight maps a case-insensitive severity label; unknown labels are neutral.
func FloodWeight(label string) float64 {
	if w, ok := floodWeights[strings.ToLower(strings.TrimSpace(label))]; ok {
		return w
	}
	return neutralWeight
}

// EarthquakeWeight scales magnitude linearly, capped at magnitude 10.
func EarthquakeWeight(magnitude float64) float64 {
	if math.IsNaN(magnitude) {
		return 0
	}
	return clamp(math.Min(magnitude/10, 1))
}

// ReliefCenterWeight is the constant emphasis given to relief centers.
func ReliefCenterWeight() float64 {
	return reliefCenterWeight
}

func clamp(w float64) float64 {
	switch {
	case math.IsNaN(w):
		return neutralWeight
	case w < 0:
		return 0
	case w > 1:
		return 1
	default:
		return w
	}
}
