package engine

import "math"

// Payouts are the total cents returned to the player on a win, zero on a
// loss. House edges are baked into the multipliers: 2% on coinflip, 1% on
// dice, effectively 0.5% on blackjack, and the single-zero wheel's inherent
// edge on roulette.

// CoinflipPayout pays floor(wager * 2 * 0.98) on a win.
func CoinflipPayout(wager int64, won bool) int64 {
	if !won {
		return 0
	}
	return int64(math.Floor(float64(wager) * 2 * 0.98))
}

// DicePayout pays floor(wager * multiplier) on a win.
func DicePayout(wager int64, result DiceResult) int64 {
	if !result.Won {
		return 0
	}
	return int64(math.Floor(float64(wager) * result.Multiplier))
}

// BlackjackPayout pays 3:2 on a natural, even money on a win, and returns
// the stake on a push.
func BlackjackPayout(wager int64, outcome BlackjackOutcome) int64 {
	switch outcome {
	case OutcomeBlackjack:
		return int64(math.Floor(float64(wager) * 2.5))
	case OutcomeWin:
		return wager * 2
	case OutcomePush:
		return wager
	}
	return 0
}

// RoulettePayout pays wager times the bet type's multiplier on a win.
func RoulettePayout(wager int64, result RouletteResult) int64 {
	if !result.Won {
		return 0
	}
	return wager * result.Multiplier
}
