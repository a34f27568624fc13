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

const agentColumns = `id, name, api_key, wallet_address, withdraw_address, balance,
	freeroll_used, freeroll_won, total_wagered, total_won, games_played,
	biggest_win, win_streak, best_streak, is_active, created_at, last_played_at`

// AgentRepository implements the service.AgentRepository interface
type AgentRepository struct {
	q queryable
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *database.DB) *AgentRepository {
	return &AgentRepository{q: db.Pool}
}

func newAgentRepositoryWithTx(tx queryable) *AgentRepository {
	return &AgentRepository{q: tx}
}

func scanAgent(row pgx.Row) (*models.Agent, error) {
	var a models.Agent
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.APIKey,
		&a.WalletAddress,
		&a.WithdrawAddress,
		&a.Balance,
		&a.FreerollUsed,
		&a.FreerollWon,
		&a.TotalWagered,
		&a.TotalWon,
		&a.GamesPlayed,
		&a.BiggestWin,
		&a.WinStreak,
		&a.BestStreak,
		&a.IsActive,
		&a.CreatedAt,
		&a.LastPlayedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create registers a new agent account
func (r *AgentRepository) Create(ctx context.Context, name *string, apiKey, walletAddress string, withdrawAddress *string) (*models.Agent, error) {
	query := `
		INSERT INTO agents (name, api_key, wallet_address, withdraw_address)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + agentColumns

	agent, err := scanAgent(r.q.QueryRow(ctx, query, name, apiKey, strings.ToLower(walletAddress), withdrawAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return agent, nil
}

// GetByAPIKey retrieves an agent by its issued credential. Returns nil
// without error when no agent matches.
func (r *AgentRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE api_key = $1`

	agent, err := scanAgent(r.q.QueryRow(ctx, query, apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to get agent by api key: %w", err)
	}
	return agent, nil
}

// GetByWallet retrieves an agent by wallet address
func (r *AgentRepository) GetByWallet(ctx context.Context, address string) (*models.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE wallet_address = $1`

	agent, err := scanAgent(r.q.QueryRow(ctx, query, strings.ToLower(address)))
	if err != nil {
		return nil, fmt.Errorf("failed to get agent by wallet %s: %w", address, err)
	}
	return agent, nil
}

// GetByID retrieves an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	agent, err := scanAgent(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", id, err)
	}
	return agent, nil
}

// GetBalance returns the authoritative current balance
func (r *AgentRepository) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, `SELECT balance FROM agents WHERE id = $1`, id).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("agent %s not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for agent %s: %w", id, err)
	}
	return balance, nil
}

// ApplyBetEffect mirrors PlayerRepository.ApplyBetEffect for agent accounts.
func (r *AgentRepository) ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error {
	query := `
		UPDATE agents SET
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
			last_played_at = NOW()
		WHERE id = $1 AND balance + $2 >= 0
	`

	result, err := r.q.Exec(ctx, query, id, profit, stats.WageredDelta, stats.PayoutDelta, stats.Won, stats.Push)
	if err != nil {
		return fmt.Errorf("failed to apply bet effect for agent %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrInsufficientBalance
	}
	return nil
}

// ConsumeFreeroll marks the one-time freeroll used. The freeroll_used guard
// in the statement makes double consumption impossible under concurrency.
func (r *AgentRepository) ConsumeFreeroll(ctx context.Context, id uuid.UUID, won bool) error {
	query := `
		UPDATE agents
		SET freeroll_used = TRUE, freeroll_won = $2
		WHERE id = $1 AND freeroll_used = FALSE
	`

	result, err := r.q.Exec(ctx, query, id, won)
	if err != nil {
		return fmt.Errorf("failed to consume freeroll for agent %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrFreerollUnavailable
	}
	return nil
}

// ZeroBalance zeroes an agent's balance only if it still equals expected,
// so a concurrent settlement between the read and the withdrawal fails the
// claim instead of silently losing funds.
func (r *AgentRepository) ZeroBalance(ctx context.Context, id uuid.UUID, expected int64) error {
	result, err := r.q.Exec(ctx,
		`UPDATE agents SET balance = 0 WHERE id = $1 AND balance = $2`, id, expected)
	if err != nil {
		return fmt.Errorf("failed to zero balance for agent %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance for agent %s changed during withdrawal", id)
	}
	return nil
}

// SetWithdrawAddress updates the default claim destination
func (r *AgentRepository) SetWithdrawAddress(ctx context.Context, id uuid.UUID, address string) error {
	result, err := r.q.Exec(ctx,
		`UPDATE agents SET withdraw_address = $2 WHERE id = $1`, id, strings.ToLower(address))
	if err != nil {
		return fmt.Errorf("failed to set withdraw address for agent %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("agent %s not found", id)
	}
	return nil
}
