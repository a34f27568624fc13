package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayRoulette_Golden(t *testing.T) {
	// seedA spins 34 (red), seedC spins 7 (red).
	tests := []struct {
		seed    string
		betType RouletteBetType
		number  int
		spin    int
		won     bool
		mult    int64
	}{
		{seedA, BetStraight, 34, 34, true, 36},
		{seedA, BetStraight, 17, 34, false, 36},
		{seedA, BetRed, 0, 34, true, 2},
		{seedA, BetBlack, 0, 34, false, 2},
		{seedA, BetEven, 0, 34, true, 2},
		{seedA, BetHigh, 0, 34, true, 2},
		{seedA, BetDozen3, 0, 34, true, 3},
		{seedC, BetStraight, 7, 7, true, 36},
		{seedC, BetOdd, 0, 7, true, 2},
		{seedC, BetLow, 0, 7, true, 2},
		{seedC, BetDozen1, 0, 7, true, 3},
		{seedC, BetDozen2, 0, 7, false, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.seed[:8], tt.betType), func(t *testing.T) {
			got := PlayRoulette(tt.seed, tt.betType, tt.number)
			assert.Equal(t, tt.spin, got.Spin)
			assert.Equal(t, tt.won, got.Won)
			assert.Equal(t, tt.mult, got.Multiplier)
		})
	}
}

func TestRouletteColor(t *testing.T) {
	assert.Equal(t, "green", RouletteColor(0))
	assert.Equal(t, "red", RouletteColor(1))
	assert.Equal(t, "black", RouletteColor(2))
	assert.Equal(t, "red", RouletteColor(36))
	assert.Equal(t, "black", RouletteColor(35))

	red := 0
	for n := 1; n <= 36; n++ {
		if RouletteColor(n) == "red" {
			red++
		}
	}
	assert.Equal(t, 18, red)
}

func TestPlayRoulette_ZeroOnlyWinsStraight(t *testing.T) {
	// Find a seed that spins zero, then confirm only a straight-0 bet wins.
	for i := 0; i < 5000; i++ {
		seed := fmt.Sprintf("zero-seed-%d", i)
		if PlayRoulette(seed, BetStraight, 0).Spin != 0 {
			continue
		}
		assert.True(t, PlayRoulette(seed, BetStraight, 0).Won)
		for _, bt := range []RouletteBetType{BetRed, BetBlack, BetEven, BetOdd, BetLow, BetHigh, BetDozen1, BetDozen2, BetDozen3} {
			assert.False(t, PlayRoulette(seed, bt, 0).Won, "bet type %s won on zero", bt)
		}
		return
	}
	t.Fatal("no zero spin in sample")
}

func TestPlayRoulette_StraightRateConverges(t *testing.T) {
	const n = 50000
	wins := 0
	for i := 0; i < n; i++ {
		if PlayRoulette(fmt.Sprintf("straight-seed-%d", i), BetStraight, 17).Won {
			wins++
		}
	}
	// 1/37 chance, about 2.7%.
	assert.InDelta(t, 1.0/37.0, float64(wins)/n, 0.005)
}

func TestPlayRoulette_SpinBounds(t *testing.T) {
	for i := 0; i < 2000; i++ {
		r := PlayRoulette(fmt.Sprintf("spin-seed-%d", i), BetRed, 0)
		assert.GreaterOrEqual(t, r.Spin, 0)
		assert.LessOrEqual(t, r.Spin, 36)
	}
}

func TestRouletteBetType_Valid(t *testing.T) {
	assert.True(t, BetStraight.Valid())
	assert.True(t, BetDozen3.Valid())
	assert.False(t, RouletteBetType("corner").Valid())
}
