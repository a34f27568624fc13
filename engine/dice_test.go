package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayDice_Golden(t *testing.T) {
	tests := []struct {
		seed      string
		target    int
		direction Direction
		roll      int
		won       bool
	}{
		{seedA, 50, Over, 93, true},
		{seedA, 50, Under, 93, false},
		{seedB, 50, Over, 53, true},
		{seedC, 50, Under, 20, true},
		{seedC, 20, Under, 20, false}, // exact target never wins
	}

	for _, tt := range tests {
		got := PlayDice(tt.seed, tt.target, tt.direction)
		assert.Equal(t, tt.roll, got.Roll, "seed %s", tt.seed[:8])
		assert.Equal(t, tt.won, got.Won)
	}
}

func TestPlayDice_Multiplier(t *testing.T) {
	tests := []struct {
		target    int
		direction Direction
		want      float64
	}{
		{50, Over, 1.98},   // 50% chance
		{50, Under, 2.0204}, // 49% chance
		{98, Over, 49.5},   // 2% chance
		{2, Under, 99.0},   // 1% chance
		{2, Over, 1.0102},  // 98% chance
	}

	for _, tt := range tests {
		got := PlayDice(seedA, tt.target, tt.direction)
		assert.InDelta(t, tt.want, got.Multiplier, 1e-9,
			"target=%d direction=%s", tt.target, tt.direction)
	}
}

func TestDiceMultiplier_ZeroChance(t *testing.T) {
	// Unreachable through valid targets, but must not divide by zero.
	assert.Equal(t, 0.0, diceMultiplier(0))
	assert.Equal(t, 0.0, diceMultiplier(-1))
}

func TestPlayDice_RollBounds(t *testing.T) {
	for i := 0; i < 2000; i++ {
		r := PlayDice(fmt.Sprintf("bounds-seed-%d", i), 50, Over)
		assert.GreaterOrEqual(t, r.Roll, 1)
		assert.LessOrEqual(t, r.Roll, 100)
	}
}

func TestPlayDice_WinRateConverges(t *testing.T) {
	const n = 50000
	wins := 0
	for i := 0; i < n; i++ {
		if PlayDice(fmt.Sprintf("rate-seed-%d", i), 50, Over).Won {
			wins++
		}
	}
	assert.InDelta(t, 0.5, float64(wins)/n, 0.01)
}
