package engine

// CoinSide is one face of the coin.
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// Valid reports whether s is a known coin side.
func (s CoinSide) Valid() bool {
	return s == Heads || s == Tails
}

// CoinflipResult is the full replayable outcome of one flip.
type CoinflipResult struct {
	Choice CoinSide `json:"choice"`
	Result CoinSide `json:"result"`
	Won    bool     `json:"won"`
}

// PlayCoinflip flips the coin for the given seed. One draw at nonce 0:
// values below 0.5 land heads.
func PlayCoinflip(seed string, choice CoinSide) CoinflipResult {
	result := Tails
	if Float(seed, 0) < 0.5 {
		result = Heads
	}
	return CoinflipResult{
		Choice: choice,
		Result: result,
		Won:    choice == result,
	}
}
