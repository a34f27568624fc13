package models

import (
	"time"

	"github.com/google/uuid"
)

// GameType identifies one of the four games.
type GameType string

const (
	GameCoinflip  GameType = "coinflip"
	GameDice      GameType = "dice"
	GameBlackjack GameType = "blackjack"
	GameRoulette  GameType = "roulette"
)

// Valid reports whether g is a known game type.
func (g GameType) Valid() bool {
	switch g {
	case GameCoinflip, GameDice, GameBlackjack, GameRoulette:
		return true
	}
	return false
}

// Outcome is the settled result of a bet from the player's side.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomePush Outcome = "push"
)

// Game is the immutable, append-only record of a settled bet. It carries the
// revealed seed and its prior commitment so anyone can replay the outcome.
// Rows are never updated or deleted.
type Game struct {
	ID         uuid.UUID      `db:"id"`
	PlayerID   *uuid.UUID     `db:"player_id"`
	AgentID    *uuid.UUID     `db:"agent_id"`
	ActorType  ActorType      `db:"actor_type"`
	GameType   GameType       `db:"game_type"`
	Wager      int64          `db:"wager"`
	Outcome    Outcome        `db:"outcome"`
	Payout     int64          `db:"payout"`
	Profit     int64          `db:"profit"`
	IsFreeroll bool           `db:"is_freeroll"`
	SeedHash   string         `db:"seed_hash"`
	Seed       string         `db:"seed"`
	SessionID  string         `db:"session_id"`
	ResultData map[string]any `db:"result_data"`
	CreatedAt  time.Time      `db:"created_at"`
}

// StatsUpdate is the per-bet aggregate mutation applied atomically with the
// balance change. WageredDelta is zero for freerolls since no stake was
// risked.
type StatsUpdate struct {
	WageredDelta int64
	PayoutDelta  int64
	Won          bool
	Push         bool
}

// VerifyResult is the outcome of replaying a settled bet from its revealed
// seed. Valid is true when the recomputed outcome and payout match the
// stored record and the seed hashes to the published commitment.
type VerifyResult struct {
	GameID         uuid.UUID `json:"gameId"`
	Valid          bool      `json:"valid"`
	SeedMatch      bool      `json:"seedMatch"`
	OutcomeMatch   bool      `json:"outcomeMatch"`
	SeedHash       string    `json:"seedHash"`
	Seed           string    `json:"seed"`
	StoredOutcome  Outcome   `json:"storedOutcome"`
	ReplayOutcome  Outcome   `json:"replayOutcome"`
	StoredPayout   int64     `json:"storedPayout"`
	ReplayedPayout int64     `json:"replayedPayout"`
}

// BetResult is returned to the caller after settlement, with everything
// needed for independent verification.
type BetResult struct {
	GameID     uuid.UUID `json:"gameId"`
	GameType   GameType  `json:"gameType"`
	Outcome    Outcome   `json:"outcome"`
	Payout     int64     `json:"payout"`
	Profit     int64     `json:"profit"`
	IsFreeroll bool      `json:"isFreeroll"`
	SeedHash   string    `json:"seedHash"`
	Seed       string    `json:"seed"`
	SessionID  string    `json:"sessionId"`
	ResultData any       `json:"resultData"`
	NewBalance int64     `json:"newBalance"`
}
