package engine

import "strconv"

// Card is a single playing card. NumValue is the blackjack value with aces
// counted high; HandTotal reduces them as needed.
type Card struct {
	Suit     string `json:"suit"`
	Value    string `json:"value"`
	NumValue int    `json:"numValue"`
}

// BlackjackOutcome is the result of a dealt hand.
type BlackjackOutcome string

const (
	OutcomeBlackjack BlackjackOutcome = "blackjack"
	OutcomeWin       BlackjackOutcome = "win"
	OutcomePush      BlackjackOutcome = "push"
	OutcomeLose      BlackjackOutcome = "lose"
	OutcomeBust      BlackjackOutcome = "bust"
)

// BlackjackResult is the full replayable outcome of one dealt hand. This is
// the single-deal variant: two cards each, no hits, settled immediately.
type BlackjackResult struct {
	PlayerCards []Card           `json:"playerCards"`
	DealerCards []Card           `json:"dealerCards"`
	PlayerTotal int              `json:"playerTotal"`
	DealerTotal int              `json:"dealerTotal"`
	Outcome     BlackjackOutcome `json:"outcome"`
}

var (
	cardSuits  = []string{"♠", "♥", "♦", "♣"}
	cardValues = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

func cardNumValue(value string) int {
	switch value {
	case "J", "Q", "K":
		return 10
	case "A":
		return 11
	}
	n, _ := strconv.Atoi(value)
	return n
}

// shuffledDeck builds the 52-card deck and Fisher-Yates shuffles it with one
// RNG draw per position, nonce = shuffle index, so the full deck order is a
// pure function of the seed.
func shuffledDeck(seed string) []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range cardSuits {
		for _, value := range cardValues {
			deck = append(deck, Card{Suit: suit, Value: value, NumValue: cardNumValue(value)})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := int(Float(seed, i) * float64(i+1))
		if j > i {
			j = i
		}
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// HandTotal sums a hand, demoting aces from 11 to 1 while the total busts.
func HandTotal(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.NumValue
		if c.Value == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// PlayBlackjack deals player cards from deck positions 0 and 2, dealer cards
// from 1 and 3, and settles. Outcome precedence: player 21 is blackjack,
// player over 21 is bust, then totals are compared.
func PlayBlackjack(seed string) BlackjackResult {
	deck := shuffledDeck(seed)
	playerCards := []Card{deck[0], deck[2]}
	dealerCards := []Card{deck[1], deck[3]}
	playerTotal := HandTotal(playerCards)
	dealerTotal := HandTotal(dealerCards)

	outcome := OutcomeWin
	switch {
	case playerTotal == 21:
		outcome = OutcomeBlackjack
	case playerTotal > 21:
		outcome = OutcomeBust
	case dealerTotal > playerTotal:
		outcome = OutcomeLose
	case dealerTotal == playerTotal:
		outcome = OutcomePush
	}

	return BlackjackResult{
		PlayerCards: playerCards,
		DealerCards: dealerCards,
		PlayerTotal: playerTotal,
		DealerTotal: dealerTotal,
		Outcome:     outcome,
	}
}
