package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"casino/database"
	"casino/models"
)

// GameRepository implements the service.GameRepository interface. The games
// table is the append-only bet log: rows are inserted once and never touched
// again.
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

// Create appends a settled bet to the log
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	resultJSON, err := json.Marshal(game.ResultData)
	if err != nil {
		return fmt.Errorf("failed to marshal result data: %w", err)
	}

	query := `
		INSERT INTO games
		(id, player_id, agent_id, actor_type, game_type, wager, outcome, payout,
		 profit, is_freeroll, seed_hash, seed, session_id, result_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err = r.q.QueryRow(ctx, query,
		game.ID,
		game.PlayerID,
		game.AgentID,
		game.ActorType,
		game.GameType,
		game.Wager,
		game.Outcome,
		game.Payout,
		game.Profit,
		game.IsFreeroll,
		game.SeedHash,
		game.Seed,
		game.SessionID,
		resultJSON,
	).Scan(&game.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game record %s: %w", game.ID, err)
	}
	return nil
}

const gameColumns = `id, player_id, agent_id, actor_type, game_type, wager, outcome,
	payout, profit, is_freeroll, seed_hash, seed, session_id, result_data, created_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	var resultJSON []byte
	err := row.Scan(
		&g.ID,
		&g.PlayerID,
		&g.AgentID,
		&g.ActorType,
		&g.GameType,
		&g.Wager,
		&g.Outcome,
		&g.Payout,
		&g.Profit,
		&g.IsFreeroll,
		&g.SeedHash,
		&g.Seed,
		&g.SessionID,
		&resultJSON,
		&g.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &g.ResultData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result data: %w", err)
		}
	}
	return &g, nil
}

// GetByID retrieves a single bet record
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return game, nil
}

// GetByActor returns an actor's bet history, newest first
func (r *GameRepository) GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.Game, error) {
	column := "player_id"
	if actorType == models.ActorAgent {
		column = "agent_id"
	}
	query := `SELECT ` + gameColumns + ` FROM games WHERE ` + column + ` = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.q.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for %s %s: %w", actorType, actorID, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

// GetRecentWins returns the latest winning bets for the public feed
func (r *GameRepository) GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, error) {
	query := `
		SELECT game_type, actor_type, payout, created_at
		FROM games
		WHERE outcome = 'win'
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent wins: %w", err)
	}
	defer rows.Close()

	var wins []*models.RecentWin
	for rows.Next() {
		var w models.RecentWin
		if err := rows.Scan(&w.GameType, &w.ActorType, &w.Payout, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent win: %w", err)
		}
		wins = append(wins, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent wins: %w", err)
	}
	return wins, nil
}

// GetCasinoStats aggregates house-wide totals over the bet log
func (r *GameRepository) GetCasinoStats(ctx context.Context) (*models.CasinoStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT COALESCE(player_id, agent_id)),
			COALESCE(SUM(wager) FILTER (WHERE NOT is_freeroll), 0),
			COALESCE(SUM(payout), 0),
			COALESCE(MAX(payout), 0),
			COUNT(*) FILTER (WHERE outcome = 'win'),
			COUNT(*) FILTER (WHERE outcome = 'lose'),
			COUNT(*) FILTER (WHERE is_freeroll)
		FROM games
	`

	var stats models.CasinoStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalGames,
		&stats.UniquePlayers,
		&stats.TotalWagered,
		&stats.TotalPaidOut,
		&stats.BiggestWinEver,
		&stats.TotalWins,
		&stats.TotalLosses,
		&stats.TotalFreerolls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get casino stats: %w", err)
	}
	return &stats, nil
}

// GetLeaderboard returns the top accounts across both variants ordered by
// total won.
func (r *GameRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT * FROM (
			SELECT 'player' AS actor_type, id, COALESCE(display_name, address) AS display_name,
			       address, total_won, total_wagered, games_played, biggest_win, best_streak
			FROM players
			WHERE games_played > 0
			UNION ALL
			SELECT 'agent' AS actor_type, id, COALESCE(name, wallet_address) AS display_name,
			       wallet_address, total_won, total_wagered, games_played, biggest_win, best_streak
			FROM agents
			WHERE games_played > 0
		) accounts
		ORDER BY total_won DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		err := rows.Scan(
			&e.ActorType,
			&e.ActorID,
			&e.DisplayName,
			&e.Address,
			&e.TotalWon,
			&e.TotalWagered,
			&e.GamesPlayed,
			&e.BiggestWin,
			&e.BestStreak,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if e.TotalWagered > 0 {
			e.ROIPct = float64(e.TotalWon-e.TotalWagered) / float64(e.TotalWagered) * 100
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	for i, e := range entries {
		e.Rank = i + 1
	}
	return entries, nil
}
