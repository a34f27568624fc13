package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a human account identified by wallet address, created on first
// deposit or bet. Balance is in cents and is only mutated through settlement
// and deposit/withdrawal flows.
type Player struct {
	ID           uuid.UUID `db:"id"`
	Address      string    `db:"address"`
	DisplayName  *string   `db:"display_name"`
	Balance      int64     `db:"balance"`
	TotalWagered int64     `db:"total_wagered"`
	TotalWon     int64     `db:"total_won"`
	GamesPlayed  int64     `db:"games_played"`
	BiggestWin   int64     `db:"biggest_win"`
	WinStreak    int64     `db:"win_streak"`
	BestStreak   int64     `db:"best_streak"`
	CreatedAt    time.Time `db:"created_at"`
	LastSeenAt   time.Time `db:"last_seen_at"`
}

// Actor returns the actor view used by the betting flow.
func (p *Player) Actor() Actor {
	return Actor{
		Type:    ActorPlayer,
		ID:      p.ID,
		Address: p.Address,
		Balance: p.Balance,
	}
}
