package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice_ReferenceValues(t *testing.T) {
	tests := []struct {
		name     string
		in       PricingInput
		wantCall float64
		wantPut  float64
	}{
		{
			name:     "at the money no dividend",
			in:       PricingInput{S: 100, K: 100, T: 1, R: 5, Sigma: 20, Q: 0},
			wantCall: 10.450583572185565,
			wantPut:  5.573526022256971,
		},
		{
			name:     "in the money with dividend",
			in:       PricingInput{S: 100, K: 95, T: 0.5, R: 3, Sigma: 25, Q: 2},
			wantCall: 9.831948725700414,
			wantPut:  4.412599613074562,
		},
		{
			name:     "out of the money long dated",
			in:       PricingInput{S: 50, K: 60, T: 2, R: 1, Sigma: 30, Q: 1.5},
			wantCall: 4.764794361651331,
			wantPut:  15.054438082631236,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, put := Price(tt.in)
			assert.InDelta(t, tt.wantCall, call, 1e-9)
			assert.InDelta(t, tt.wantPut, put, 1e-9)
			assert.GreaterOrEqual(t, call, 0.0)
			assert.GreaterOrEqual(t, put, 0.0)
		})
	}
}

func TestPrice_PutCallParity(t *testing.T) {
	inputs := []PricingInput{
		{S: 100, K: 100, T: 1, R: 5, Sigma: 20, Q: 0},
		{S: 120, K: 80, T: 0.25, R: 2, Sigma: 45, Q: 3},
		{S: 10, K: 12, T: 3, R: 0, Sigma: 10, Q: 0},
		{S: 4000, K: 4100, T: 0.1, R: 4.5, Sigma: 18, Q: 1.2},
	}
	for _, in := range inputs {
		call, put := Price(in)
		assert.InDelta(t, 0, ParityGap(in, call, put), 1e-9, "input %+v", in)
	}
}

func TestPrice_DegenerateInputsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		in   PricingInput
	}{
		{"zero time at the money", PricingInput{S: 100, K: 100, T: 0, R: 5, Sigma: 20}},
		{"zero volatility at the money zero carry", PricingInput{S: 100, K: 100, T: 1, R: 0, Sigma: 0}},
		{"negative spot", PricingInput{S: -1, K: 100, T: 1, R: 5, Sigma: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, put := Price(tt.in)
			assert.True(t, math.IsNaN(call))
			assert.True(t, math.IsNaN(put))
		})
	}
}

func TestPrice_ZeroVolatilityWithCarryIsIntrinsic(t *testing.T) {
	in := PricingInput{S: 100, K: 100, T: 1, R: 5, Sigma: 0}
	call, put := Price(in)
	assert.InDelta(t, 100-100*math.Exp(-0.05), call, 1e-12)
	assert.InDelta(t, 0, put, 1e-12)
}

func TestNewCalculation(t *testing.T) {
	in := PricingInput{S: 100, K: 100, T: 1, R: 5, Sigma: 20, Q: 0}
	calc := NewCalculation(in)

	assert.Zero(t, calc.ID)
	assert.True(t, calc.DateCreated.IsZero())
	assert.Equal(t, Float(5), calc.R, "inputs are kept as percentages")
	assert.Equal(t, in, calc.Input())
	assert.InDelta(t, 10.4506, calc.CallPrice.Float64(), 1e-4)
	assert.False(t, calc.HasNonFinitePrice())

	nan := NewCalculation(PricingInput{S: 100, K: 100, T: 0, R: 5, Sigma: 20})
	assert.True(t, nan.HasNonFinitePrice())
}
