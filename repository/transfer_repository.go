package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"casino/database"
	"casino/models"
)

// DepositRepository implements the service.DepositRepository interface
type DepositRepository struct {
	q queryable
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *database.DB) *DepositRepository {
	return &DepositRepository{q: db.Pool}
}

func newDepositRepositoryWithTx(tx queryable) *DepositRepository {
	return &DepositRepository{q: tx}
}

// GetByTxHash retrieves a deposit by transaction hash. Returns nil without
// error when the hash has not been seen.
func (r *DepositRepository) GetByTxHash(ctx context.Context, txHash string) (*models.Deposit, error) {
	query := `
		SELECT id, player_id, amount, tx_hash, from_address, status, created_at, confirmed_at
		FROM deposits WHERE tx_hash = $1
	`

	var d models.Deposit
	err := r.q.QueryRow(ctx, query, txHash).Scan(
		&d.ID, &d.PlayerID, &d.Amount, &d.TxHash, &d.FromAddress,
		&d.Status, &d.CreatedAt, &d.ConfirmedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit by tx %s: %w", txHash, err)
	}
	return &d, nil
}

// Create records a credited deposit. The unique constraint on tx_hash is the
// idempotency guard: a second insert for the same transaction fails instead
// of double-crediting.
func (r *DepositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	query := `
		INSERT INTO deposits (player_id, amount, tx_hash, from_address, status, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at, confirmed_at
	`

	err := r.q.QueryRow(ctx, query,
		deposit.PlayerID, deposit.Amount, deposit.TxHash, deposit.FromAddress, deposit.Status,
	).Scan(&deposit.ID, &deposit.CreatedAt, &deposit.ConfirmedAt)

	if err != nil {
		return fmt.Errorf("failed to record deposit %s: %w", deposit.TxHash, err)
	}
	return nil
}

// WithdrawalRepository implements the service.WithdrawalRepository interface
type WithdrawalRepository struct {
	q queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

func newWithdrawalRepositoryWithTx(tx queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

// Create records a completed withdrawal
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (agent_id, amount, tx_hash, to_address, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at, completed_at
	`

	err := r.q.QueryRow(ctx, query,
		withdrawal.AgentID, withdrawal.Amount, withdrawal.TxHash, withdrawal.ToAddress, withdrawal.Status,
	).Scan(&withdrawal.ID, &withdrawal.CreatedAt, &withdrawal.CompletedAt)

	if err != nil {
		return fmt.Errorf("failed to record withdrawal for agent %s: %w", withdrawal.AgentID, err)
	}
	return nil
}

// GetByAgent returns an agent's withdrawal history, newest first
func (r *WithdrawalRepository) GetByAgent(ctx context.Context, agentID uuid.UUID, limit int) ([]*models.Withdrawal, error) {
	query := `
		SELECT id, agent_id, amount, tx_hash, to_address, status, created_at, completed_at
		FROM withdrawals WHERE agent_id = $1
		ORDER BY created_at DESC LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals for agent %s: %w", agentID, err)
	}
	defer rows.Close()

	var withdrawals []*models.Withdrawal
	for rows.Next() {
		var w models.Withdrawal
		err := rows.Scan(&w.ID, &w.AgentID, &w.Amount, &w.TxHash, &w.ToAddress,
			&w.Status, &w.CreatedAt, &w.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate withdrawals: %w", err)
	}
	return withdrawals, nil
}
