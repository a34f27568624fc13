package service

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"casino/models"
)

// Deposits below this are rejected outright.
const minDepositCents = 100

type depositService struct {
	uowFactory UnitOfWorkFactory
	treasury   FundsTransfer
}

// NewDepositService creates a new deposit service
func NewDepositService(uowFactory UnitOfWorkFactory, treasury FundsTransfer) DepositService {
	return &depositService{
		uowFactory: uowFactory,
		treasury:   treasury,
	}
}

// CreditDeposit verifies a transaction with the treasury and credits the
// player exactly once. The unique tx_hash constraint makes resubmitting the
// same transaction a no-op rejection, not a double credit.
func (s *depositService) CreditDeposit(ctx context.Context, playerID uuid.UUID, txHash string) (*models.Deposit, error) {
	if txHash == "" {
		return nil, NewValidationError("txHash", "transaction hash is required")
	}

	amount, fromAddress, err := s.treasury.VerifyDeposit(ctx, txHash)
	if err != nil {
		return nil, &ExternalTransferError{Op: "verify deposit", Err: err}
	}
	if amount <= 0 {
		return nil, NewValidationError("txHash", "transaction %s carries no value", txHash)
	}
	if amount < minDepositCents {
		return nil, NewValidationError("txHash", "deposit of %d cents is below the %d cent minimum", amount, minDepositCents)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin deposit", Err: err}
	}
	defer uow.Rollback()

	existing, err := uow.DepositRepository().GetByTxHash(ctx, txHash)
	if err != nil {
		return nil, &PersistenceError{Op: "check deposit", Err: err}
	}
	if existing != nil {
		return nil, NewValidationError("txHash", "transaction %s was already credited", txHash)
	}

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup player", Err: err}
	}
	if player == nil {
		return nil, NewValidationError("playerId", "no player with id %s", playerID)
	}

	deposit := &models.Deposit{
		PlayerID:    playerID,
		Amount:      amount,
		TxHash:      txHash,
		FromAddress: fromAddress,
		Status:      models.TransferConfirmed,
	}
	if err := uow.DepositRepository().Create(ctx, deposit); err != nil {
		return nil, &PersistenceError{Op: "record deposit", Err: err}
	}

	if err := uow.PlayerRepository().AddBalance(ctx, playerID, amount); err != nil {
		return nil, &PersistenceError{Op: "credit deposit", Err: err}
	}

	history := &models.BalanceHistory{
		ActorType:       models.ActorPlayer,
		ActorID:         playerID,
		BalanceBefore:   player.Balance,
		BalanceAfter:    player.Balance + amount,
		ChangeAmount:    amount,
		TransactionType: models.TransactionTypeDeposit,
		TransactionMetadata: map[string]any{
			"tx_hash":      txHash,
			"from_address": fromAddress,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, &PersistenceError{Op: "record balance change", Err: err}
	}

	if err := uow.Commit(); err != nil {
		return nil, &PersistenceError{Op: "commit deposit", Err: err}
	}

	log.WithFields(log.Fields{
		"playerId": playerID,
		"txHash":   txHash,
		"amount":   amount,
	}).Info("Credited deposit")

	return deposit, nil
}
