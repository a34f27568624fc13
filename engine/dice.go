package engine

import "github.com/shopspring/decimal"

// Direction of a dice bet relative to the target.
type Direction string

const (
	Over  Direction = "over"
	Under Direction = "under"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Over || d == Under
}

// Dice target bounds. Targets of 2..98 guarantee both sides of the bet have
// a nonzero win chance on a 1..100 roll.
const (
	DiceTargetMin = 2
	DiceTargetMax = 98
)

// DiceResult is the full replayable outcome of one roll.
type DiceResult struct {
	Target     int       `json:"target"`
	Direction  Direction `json:"direction"`
	Roll       int       `json:"roll"`
	Won        bool      `json:"won"`
	Multiplier float64   `json:"multiplier"`
}

// PlayDice rolls 1..100 from a single draw at nonce 0 and settles the bet
// against the target. The payout multiplier is 0.99 over the win chance,
// rounded to 4 decimal places, which bakes in a 1% house edge.
func PlayDice(seed string, target int, direction Direction) DiceResult {
	roll := int(Float(seed, 0)*100) + 1
	if roll > 100 {
		roll = 100
	}

	var won bool
	var chance int64
	if direction == Over {
		won = roll > target
		chance = int64(100 - target)
	} else {
		won = roll < target
		chance = int64(target - 1)
	}

	return DiceResult{
		Target:     target,
		Direction:  direction,
		Roll:       roll,
		Won:        won,
		Multiplier: diceMultiplier(chance),
	}
}

// diceMultiplier computes 0.99 / (chance/100) to 4 decimal places. A zero
// chance yields multiplier 0 rather than dividing by zero.
func diceMultiplier(chancePct int64) float64 {
	if chancePct <= 0 {
		return 0
	}
	m := decimal.NewFromFloat(0.99).
		Div(decimal.New(chancePct, -2)).
		Round(4)
	f, _ := m.Float64()
	return f
}
