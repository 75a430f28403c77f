package trust_test

import (
	"testing"

	"wayfare/services/trust"

	"github.com/stretchr/testify/require"
)

// TestCanOperate_thresholds verifies the score floor and level membership
// are both required.
func TestCanOperate_thresholds(t *testing.T) {
	gate := trust.NewGate(65, "trusted")

	tests := []struct {
		name  string
		score int
		level string
		want  bool
	}{
		{"at threshold", 65, "trusted", true},
		{"above threshold", 90, "trusted", true},
		{"below threshold", 50, "trusted", false},
		{"just below threshold", 64, "trusted", false},
		{"wrong level", 90, "new", false},
		{"zero score", 0, "trusted", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.CanOperate(tt.score, tt.level))
		})
	}
}

// TestNewGate_parsesLevels verifies comma-separated level lists from config.
func TestNewGate_parsesLevels(t *testing.T) {
	gate := trust.NewGate(70, "trusted, verified")

	require.True(t, gate.CanOperate(70, "trusted"))
	require.True(t, gate.CanOperate(70, "verified"))
	require.False(t, gate.CanOperate(70, "new"))
}

// TestNewGate_emptyLevels verifies that no level passes an empty allow list.
func TestNewGate_emptyLevels(t *testing.T) {
	gate := trust.NewGate(0, "")

	require.False(t, gate.CanOperate(100, "trusted"))
}

// TestCanOperate_verticalThresholds mirrors the two production gates: the
// stay vertical requires a higher score than tours.
func TestCanOperate_verticalThresholds(t *testing.T) {
	tour := trust.NewGate(65, "trusted")
	stay := trust.NewGate(70, "trusted")

	require.True(t, tour.CanOperate(67, "trusted"))
	require.False(t, stay.CanOperate(67, "trusted"))
}
