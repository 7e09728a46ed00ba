package incident

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireWeight_FixtureFigure(t *testing.T) {
	assert.InDelta(t, 0.385, FireWeight(ptr(2500), ptr(30)), 1e-9)
}

func TestFireWeight_MissingInputsAreNeutral(t *testing.T) {
	assert.Equal(t, 0.5, FireWeight(nil, ptr(30)))
	assert.Equal(t, 0.5, FireWeight(ptr(2500), nil))
	assert.Equal(t, 0.5, FireWeight(nil, nil))
	assert.Equal(t, 0.5, FireWeight(ptr(math.NaN()), ptr(10)))
}

func TestFireWeight_Bounds(t *testing.T) {
	assert.InDelta(t, 0.0, FireWeight(ptr(0), ptr(100)), 1e-12)
	assert.InDelta(t, 1.0, FireWeight(ptr(50000), ptr(0)), 1e-12)
	// containment reported above 100 must not push the weight negative
	assert.Equal(t, 0.0, FireWeight(ptr(0), ptr(140)))
}

func TestFireWeight_Monotonic(t *testing.T) {
	for containment := 0.0; containment <= 100; containment += 10 {
		prev := -1.0
		for acres := 0.0; acres <= 20000; acres += 500 {
			w := FireWeight(ptr(acres), ptr(containment))
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
			assert.GreaterOrEqual(t, w, prev, "acres=%v containment=%v", acres, containment)
			prev = w
		}
	}

	for acres := 0.0; acres <= 20000; acres += 2500 {
		prev := -1.0
		for containment := 100.0; containment >= 0; containment -= 5 {
			w := FireWeight(ptr(acres), ptr(containment))
			assert.GreaterOrEqual(t, w, prev, "acres=%v containment=%v", acres, containment)
			prev = w
		}
	}
}

func TestEvacuationWeight(t *testing.T) {
	assert.Equal(t, 0.9, EvacuationWeight(true))
	assert.Equal(t, 0.5, EvacuationWeight(false))
}

func TestFloodWeight(t *testing.T) {
	cases := map[string]float64{
		"major":     0.9,
		"MODERATE":  0.6,
		"minor":     0.3,
		"Minor ":    0.3,
		"unknown":   0.5,
		"":          0.5,
		"extreme!!": 0.5,
	}
	for label, want := range cases {
		assert.Equal(t, want, FloodWeight(label), "label %q", label)
	}
}

func TestEarthquakeWeight(t *testing.T) {
	assert.Equal(t, 0.0, EarthquakeWeight(0))
	assert.Equal(t, 0.5, EarthquakeWeight(5))
	assert.Equal(t, 1.0, EarthquakeWeight(10))
	assert.Equal(t, 1.0, EarthquakeWeight(12))
	assert.Equal(t, 0.0, EarthquakeWeight(-0.4))
	assert.Equal(t, 0.0, EarthquakeWeight(math.NaN()))
}
