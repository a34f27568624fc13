package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeBetWin     TransactionType = "bet_win"
	TransactionTypeBetLoss    TransactionType = "bet_loss"
	TransactionTypeBetPush    TransactionType = "bet_push"
	TransactionTypeFreeroll   TransactionType = "freeroll"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	ActorType           ActorType       `db:"actor_type"`
	ActorID             uuid.UUID       `db:"actor_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedGameID       *uuid.UUID      `db:"related_game_id"`
	CreatedAt           time.Time       `db:"created_at"`
}
