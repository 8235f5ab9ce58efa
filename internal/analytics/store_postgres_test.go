// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "exact", input: 1200.50, expected: 1200.50},
		{name: "floating_point_drift", input: 189.90*8 + 0.0000001, expected: 1519.20},
		{name: "round_up", input: 10.006, expected: 10.01},
		{name: "round_down", input: 10.004, expected: 10.00},
		{name: "zero", input: 0, expected: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, roundCurrency(test.input), 0.0001)
		})
	}
}

func TestPickName(t *testing.T) {
	assert.Equal(t, "Michelin Pilot Sport 4", pickName("Michelin Pilot Sport 4", "Front tire"))
	assert.Equal(t, "Front tire", pickName("", "Front tire"))
	assert.Equal(t, "", pickName("", ""))
}
