package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one row of the public leaderboard, spanning both
// account variants and ordered by total won.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	ActorType    ActorType `json:"playerType"`
	ActorID      uuid.UUID `json:"id"`
	DisplayName  string    `json:"displayName"`
	Address      string    `json:"address"`
	TotalWon     int64     `json:"totalWon"`
	TotalWagered int64     `json:"totalWagered"`
	GamesPlayed  int64     `json:"gamesPlayed"`
	BiggestWin   int64     `json:"biggestWin"`
	BestStreak   int64     `json:"bestStreak"`
	ROIPct       float64   `json:"roiPct"`
}

// CasinoStats are house-wide aggregates over the bet log.
type CasinoStats struct {
	TotalGames     int64 `json:"totalGames"`
	UniquePlayers  int64 `json:"uniquePlayers"`
	TotalWagered   int64 `json:"totalWagered"`
	TotalPaidOut   int64 `json:"totalPaidOut"`
	BiggestWinEver int64 `json:"biggestWinEver"`
	TotalWins      int64 `json:"totalWins"`
	TotalLosses    int64 `json:"totalLosses"`
	TotalFreerolls int64 `json:"totalFreerolls"`
}

// RecentWin is one entry of the public recent-wins feed.
type RecentWin struct {
	GameType  GameType  `json:"gameType"`
	ActorType ActorType `json:"playerType"`
	Payout    int64     `json:"payout"`
	CreatedAt time.Time `json:"createdAt"`
}
