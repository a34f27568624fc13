package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus tracks an on-chain movement recorded locally.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferConfirmed TransferStatus = "confirmed"
	TransferFailed    TransferStatus = "failed"
)

// Deposit is a credited inbound transfer. TxHash is unique so a deposit is
// credited at most once no matter how often it is resubmitted.
type Deposit struct {
	ID          int64          `db:"id"`
	PlayerID    uuid.UUID      `db:"player_id"`
	Amount      int64          `db:"amount"`
	TxHash      string         `db:"tx_hash"`
	FromAddress string         `db:"from_address"`
	Status      TransferStatus `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	ConfirmedAt *time.Time     `db:"confirmed_at"`
}

// Withdrawal is an outbound claim of an agent's full balance. The external
// transfer completes before the local balance is zeroed.
type Withdrawal struct {
	ID          int64          `db:"id"`
	AgentID     uuid.UUID      `db:"agent_id"`
	Amount      int64          `db:"amount"`
	TxHash      string         `db:"tx_hash"`
	ToAddress   string         `db:"to_address"`
	Status      TransferStatus `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	CompletedAt *time.Time     `db:"completed_at"`
}
