package engine

// RouletteBetType is one of the supported European roulette bets.
type RouletteBetType string

const (
	BetStraight RouletteBetType = "straight"
	BetRed      RouletteBetType = "red"
	BetBlack    RouletteBetType = "black"
	BetEven     RouletteBetType = "even"
	BetOdd      RouletteBetType = "odd"
	BetLow      RouletteBetType = "low"
	BetHigh     RouletteBetType = "high"
	BetDozen1   RouletteBetType = "dozen1"
	BetDozen2   RouletteBetType = "dozen2"
	BetDozen3   RouletteBetType = "dozen3"
)

// Valid reports whether t is a known bet type.
func (t RouletteBetType) Valid() bool {
	switch t {
	case BetStraight, BetRed, BetBlack, BetEven, BetOdd, BetLow, BetHigh,
		BetDozen1, BetDozen2, BetDozen3:
		return true
	}
	return false
}

// RouletteResult is the full replayable outcome of one spin.
type RouletteResult struct {
	BetType    RouletteBetType `json:"betType"`
	Number     int             `json:"number,omitempty"`
	Spin       int             `json:"spinResult"`
	Color      string          `json:"color"`
	Won        bool            `json:"won"`
	Multiplier int64           `json:"multiplier"`
}

// Standard European red set.
var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// RouletteColor returns green for zero, otherwise red or black per the
// standard wheel layout.
func RouletteColor(spin int) string {
	switch {
	case spin == 0:
		return "green"
	case rouletteRed[spin]:
		return "red"
	default:
		return "black"
	}
}

// PlayRoulette spins a single-zero wheel from one draw at nonce 0 and
// settles the bet. number is only meaningful for straight bets.
func PlayRoulette(seed string, betType RouletteBetType, number int) RouletteResult {
	spin := int(Float(seed, 0) * 37)
	if spin > 36 {
		spin = 36
	}
	color := RouletteColor(spin)

	var won bool
	var multiplier int64
	switch betType {
	case BetStraight:
		won = spin == number
		multiplier = 36
	case BetRed:
		won = color == "red"
		multiplier = 2
	case BetBlack:
		won = color == "black"
		multiplier = 2
	case BetEven:
		won = spin != 0 && spin%2 == 0
		multiplier = 2
	case BetOdd:
		won = spin%2 == 1
		multiplier = 2
	case BetLow:
		won = spin >= 1 && spin <= 18
		multiplier = 2
	case BetHigh:
		won = spin >= 19 && spin <= 36
		multiplier = 2
	case BetDozen1:
		won = spin >= 1 && spin <= 12
		multiplier = 3
	case BetDozen2:
		won = spin >= 13 && spin <= 24
		multiplier = 3
	case BetDozen3:
		won = spin >= 25 && spin <= 36
		multiplier = 3
	}

	return RouletteResult{
		BetType:    betType,
		Number:     number,
		Spin:       spin,
		Color:      color,
		Won:        won,
		Multiplier: multiplier,
	}
}
