package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"casino/database"
	"casino/models"
)

// BalanceHistoryRepository implements the service.BalanceHistoryRepository interface
type BalanceHistoryRepository struct {
	q queryable
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *database.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool}
}

func newBalanceHistoryRepositoryWithTx(tx queryable) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx}
}

// Record appends a balance change entry to the audit trail
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	query := `
		INSERT INTO balance_history (actor_type, actor_id, balance_before, balance_after,
			change_amount, transaction_type, transaction_metadata, related_game_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		history.ActorType, history.ActorID, history.BalanceBefore, history.BalanceAfter,
		history.ChangeAmount, history.TransactionType, history.TransactionMetadata, history.RelatedGameID,
	).Scan(&history.ID, &history.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}
	return nil
}

// GetByActor returns an actor's balance changes, newest first
func (r *BalanceHistoryRepository) GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.BalanceHistory, error) {
	query := `
		SELECT id, actor_type, actor_id, balance_before, balance_after,
			change_amount, transaction_type, transaction_metadata, related_game_id, created_at
		FROM balance_history
		WHERE actor_type = $1 AND actor_id = $2
		ORDER BY created_at DESC LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, actorType, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for %s %s: %w", actorType, actorID, err)
	}
	defer rows.Close()

	var entries []*models.BalanceHistory
	for rows.Next() {
		var h models.BalanceHistory
		err := rows.Scan(&h.ID, &h.ActorType, &h.ActorID, &h.BalanceBefore, &h.BalanceAfter,
			&h.ChangeAmount, &h.TransactionType, &h.TransactionMetadata, &h.RelatedGameID, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}
	return entries, nil
}
