package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffledDeck_Complete(t *testing.T) {
	deck := shuffledDeck(seedA)
	require.Len(t, deck, 52)

	seen := make(map[string]bool)
	for _, c := range deck {
		key := c.Value + c.Suit
		assert.False(t, seen[key], "duplicate card %s", key)
		seen[key] = true
	}
}

func TestShuffledDeck_Deterministic(t *testing.T) {
	assert.Equal(t, shuffledDeck(seedB), shuffledDeck(seedB))
	assert.NotEqual(t, shuffledDeck(seedA), shuffledDeck(seedB))
}

func TestHandTotal(t *testing.T) {
	card := func(value string) Card {
		return Card{Suit: "♠", Value: value, NumValue: cardNumValue(value)}
	}

	tests := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"simple", []Card{card("5"), card("9")}, 14},
		{"faces", []Card{card("K"), card("Q")}, 20},
		{"ace high", []Card{card("A"), card("7")}, 18},
		{"natural", []Card{card("A"), card("K")}, 21},
		{"ace demoted", []Card{card("A"), card("9"), card("5")}, 15},
		{"two aces", []Card{card("A"), card("A")}, 12},
		{"two aces demoted", []Card{card("A"), card("A"), card("K")}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandTotal(tt.cards))
		})
	}
}

func TestPlayBlackjack_Golden(t *testing.T) {
	// seedA deals player 5♥ 7♣ (12) vs dealer 2♣ Q♣ (12): push.
	got := PlayBlackjack(seedA)
	assert.Equal(t, 12, got.PlayerTotal)
	assert.Equal(t, 12, got.DealerTotal)
	assert.Equal(t, OutcomePush, got.Outcome)

	// seedC deals player 12 vs dealer Q♦ A♠ (21): lose.
	got = PlayBlackjack(seedC)
	assert.Equal(t, 12, got.PlayerTotal)
	assert.Equal(t, 21, got.DealerTotal)
	assert.Equal(t, OutcomeLose, got.Outcome)

	// Player A♦ K♥ is 21: blackjack regardless of the dealer's 20.
	got = PlayBlackjack("goldseed-32")
	assert.Equal(t, 21, got.PlayerTotal)
	assert.Equal(t, 20, got.DealerTotal)
	assert.Equal(t, OutcomeBlackjack, got.Outcome)
}

func TestPlayBlackjack_Deterministic(t *testing.T) {
	assert.Equal(t, PlayBlackjack(seedB), PlayBlackjack(seedB))
}

func TestPlayBlackjack_TwentyOneIsAlwaysBlackjack(t *testing.T) {
	found := 0
	for i := 0; i < 2000 && found < 5; i++ {
		r := PlayBlackjack(fmt.Sprintf("bj-seed-%d", i))
		if r.PlayerTotal == 21 {
			assert.Equal(t, OutcomeBlackjack, r.Outcome)
			found++
		}
	}
	require.Greater(t, found, 0, "no dealt 21 in sample")
}

func TestPlayBlackjack_OutcomeConsistency(t *testing.T) {
	for i := 0; i < 2000; i++ {
		r := PlayBlackjack(fmt.Sprintf("bj-check-%d", i))
		require.Len(t, r.PlayerCards, 2)
		require.Len(t, r.DealerCards, 2)
		assert.Equal(t, HandTotal(r.PlayerCards), r.PlayerTotal)
		assert.Equal(t, HandTotal(r.DealerCards), r.DealerTotal)

		switch {
		case r.PlayerTotal == 21:
			assert.Equal(t, OutcomeBlackjack, r.Outcome)
		case r.PlayerTotal > 21:
			assert.Equal(t, OutcomeBust, r.Outcome)
		case r.DealerTotal > r.PlayerTotal:
			assert.Equal(t, OutcomeLose, r.Outcome)
		case r.DealerTotal == r.PlayerTotal:
			assert.Equal(t, OutcomePush, r.Outcome)
		default:
			assert.Equal(t, OutcomeWin, r.Outcome)
		}
	}
}
