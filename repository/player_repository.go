package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"casino/database"
	"casino/models"
	"casino/service"
)

const playerColumns = `id, address, display_name, balance, total_wagered, total_won,
	games_played, biggest_win, win_streak, best_streak, created_at, last_seen_at`

// PlayerRepository implements the service.PlayerRepository interface
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID,
		&p.Address,
		&p.DisplayName,
		&p.Balance,
		&p.TotalWagered,
		&p.TotalWon,
		&p.GamesPlayed,
		&p.BiggestWin,
		&p.WinStreak,
		&p.BestStreak,
		&p.CreatedAt,
		&p.LastSeenAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByAddress retrieves a player by wallet address. Returns nil without
// error when no player exists.
func (r *PlayerRepository) GetByAddress(ctx context.Context, address string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE address = $1`

	player, err := scanPlayer(r.q.QueryRow(ctx, query, strings.ToLower(address)))
	if err != nil {
		return nil, fmt.Errorf("failed to get player by address %s: %w", address, err)
	}
	return player, nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return player, nil
}

// GetOrCreate upserts a player keyed by lowercased wallet address, bumping
// last_seen_at on every contact.
func (r *PlayerRepository) GetOrCreate(ctx context.Context, address string) (*models.Player, error) {
	query := `
		INSERT INTO players (address)
		VALUES ($1)
		ON CONFLICT (address) DO UPDATE SET last_seen_at = NOW()
		RETURNING ` + playerColumns

	player, err := scanPlayer(r.q.QueryRow(ctx, query, strings.ToLower(address)))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player %s: %w", address, err)
	}
	return player, nil
}

// GetBalance returns the authoritative current balance
func (r *PlayerRepository) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, `SELECT balance FROM players WHERE id = $1`, id).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("player %s not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for player %s: %w", id, err)
	}
	return balance, nil
}

// AddBalance adds to a player's balance atomically (deposit credit)
func (r *PlayerRepository) AddBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `UPDATE players SET balance = balance + $1, last_seen_at = NOW() WHERE id = $2`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add balance for player %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", id)
	}
	return nil
}

// ApplyBetEffect applies a settled bet's full financial effect in one atomic
// statement: balance by profit, aggregate stats, and streak counters. The
// balance guard makes a concurrent overdraw impossible regardless of what
// the caller saw before.
func (r *PlayerRepository) ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error {
	query := `
		UPDATE players SET
			balance = balance + $2,
			total_wagered = total_wagered + $3,
			total_won = total_won + $4,
			games_played = games_played + 1,
			biggest_win = GREATEST(biggest_win, $4),
			win_streak = CASE
				WHEN $5 THEN win_streak + 1
				WHEN $6 THEN win_streak
				ELSE 0
			END,
			best_streak = CASE
				WHEN $5 THEN GREATEST(best_streak, win_streak + 1)
				ELSE best_streak
			END,
			last_seen_at = NOW()
		WHERE id = $1 AND balance + $2 >= 0
	`

	result, err := r.q.Exec(ctx, query, id, profit, stats.WageredDelta, stats.PayoutDelta, stats.Won, stats.Push)
	if err != nil {
		return fmt.Errorf("failed to apply bet effect for player %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrInsufficientBalance
	}
	return nil
}
