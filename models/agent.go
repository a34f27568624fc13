package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent is an autonomous account registered explicitly and authenticated by
// an issued API key. Agents get a single zero-risk freeroll bet.
type Agent struct {
	ID              uuid.UUID  `db:"id"`
	Name            *string    `db:"name"`
	APIKey          string     `db:"api_key"`
	WalletAddress   string     `db:"wallet_address"`
	WithdrawAddress *string    `db:"withdraw_address"`
	Balance         int64      `db:"balance"`
	FreerollUsed    bool       `db:"freeroll_used"`
	FreerollWon     bool       `db:"freeroll_won"`
	TotalWagered    int64      `db:"total_wagered"`
	TotalWon        int64      `db:"total_won"`
	GamesPlayed     int64      `db:"games_played"`
	BiggestWin      int64      `db:"biggest_win"`
	WinStreak       int64      `db:"win_streak"`
	BestStreak      int64      `db:"best_streak"`
	IsActive        bool       `db:"is_active"`
	CreatedAt       time.Time  `db:"created_at"`
	LastPlayedAt    *time.Time `db:"last_played_at"`
}

// Actor returns the actor view used by the betting flow.
func (a *Agent) Actor() Actor {
	return Actor{
		Type:         ActorAgent,
		ID:           a.ID,
		Address:      a.WalletAddress,
		Balance:      a.Balance,
		FreerollUsed: a.FreerollUsed,
	}
}

// ActorType distinguishes the two account variants.
type ActorType string

const (
	ActorPlayer ActorType = "player"
	ActorAgent  ActorType = "agent"
)

// Actor is the account view a bet settles against, independent of which
// table backs it.
type Actor struct {
	Type         ActorType
	ID           uuid.UUID
	Address      string
	Balance      int64
	FreerollUsed bool
}
