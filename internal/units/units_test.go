package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	domains := []struct {
		name       string
		toMetric   func(float64) float64
		fromMetric func(float64) float64
	}{
		{"weight", OuncesToGrams, GramsToOunces},
		{"volume", OuncesToMilliliters, MillilitersToOunces},
		{"length", InchesToCentimeters, CentimetersToInches},
	}
	values := []float64{0, 0.1, 1, 3.25, 10.5, 17.75, 120, 1e6}

	for _, d := range domains {
		t.Run(d.name, func(t *testing.T) {
			for _, v := range values {
				assert.InDelta(t, v, d.fromMetric(d.toMetric(v)), 1e-9, "value %v", v)
			}
		})
	}
}

func TestFactors(t *testing.T) {
	assert.InDelta(t, 28.3495, OuncesToGrams(1), 1e-12)
	assert.InDelta(t, 29.5735, OuncesToMilliliters(1), 1e-12)
	assert.InDelta(t, 2.54, InchesToCentimeters(1), 1e-12)
	assert.InDelta(t, 1, CentimetersToInches(2.54), 1e-12)
}

func TestComplete(t *testing.T) {
	imp, met := 10.5, 500.0

	p, ok := Complete(&imp, nil, OuncesToGrams, GramsToOunces)
	assert.True(t, ok)
	assert.Equal(t, 10.5, p.Imperial)
	assert.InDelta(t, 10.5*28.3495, p.Metric, 1e-9)

	p, ok = Complete(nil, &met, OuncesToGrams, GramsToOunces)
	assert.True(t, ok)
	assert.InDelta(t, 500/28.3495, p.Imperial, 1e-9)
	assert.Equal(t, 500.0, p.Metric)

	p, ok = Complete(&imp, &met, OuncesToGrams, GramsToOunces)
	assert.True(t, ok)
	assert.Equal(t, Pair{Imperial: 10.5, Metric: 500}, p)

	_, ok = Complete(nil, nil, OuncesToGrams, GramsToOunces)
	assert.False(t, ok)
}
