package service

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"casino/models"
)

type withdrawalService struct {
	uowFactory UnitOfWorkFactory
	treasury   FundsTransfer
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(uowFactory UnitOfWorkFactory, treasury FundsTransfer) WithdrawalService {
	return &withdrawalService{
		uowFactory: uowFactory,
		treasury:   treasury,
	}
}

// ClaimBalance pays out an agent's full balance to its withdraw address.
// The external transfer runs first; only after it succeeds is the local
// balance zeroed, with a compare-and-swap so winnings that landed in the
// meantime are never silently dropped.
func (s *withdrawalService) ClaimBalance(ctx context.Context, agentID uuid.UUID) (*models.Withdrawal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin claim", Err: err}
	}
	defer uow.Rollback()

	agent, err := uow.AgentRepository().GetByID(ctx, agentID)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup agent", Err: err}
	}
	if agent == nil {
		return nil, NewValidationError("agentId", "no agent with id %s", agentID)
	}
	if agent.WithdrawAddress == nil || *agent.WithdrawAddress == "" {
		return nil, NewValidationError("withdrawAddress", "agent has no withdraw address configured")
	}
	if agent.Balance <= 0 {
		return nil, NewValidationError("balance", "nothing to claim")
	}

	// Close the read-only transaction before the external call. The send
	// must never hold a database transaction open.
	amount := agent.Balance
	toAddress := *agent.WithdrawAddress
	if err := uow.Rollback(); err != nil {
		return nil, &PersistenceError{Op: "release claim lookup", Err: err}
	}

	txHash, err := s.treasury.Send(ctx, toAddress, amount)
	if err != nil {
		return nil, &ExternalTransferError{Op: "send claim", Err: err}
	}

	uow = s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin claim settlement", Inconsistent: true, Err: err}
	}
	defer uow.Rollback()

	// CAS against the balance we paid out. If a settling bet changed the
	// balance since the read, the zeroing fails and the discrepancy is
	// surfaced instead of eaten.
	if err := uow.AgentRepository().ZeroBalance(ctx, agentID, amount); err != nil {
		return nil, &PersistenceError{Op: "zero claimed balance", Inconsistent: true, Err: err}
	}

	withdrawal := &models.Withdrawal{
		AgentID:   agentID,
		Amount:    amount,
		TxHash:    txHash,
		ToAddress: toAddress,
		Status:    models.TransferConfirmed,
	}
	if err := uow.WithdrawalRepository().Create(ctx, withdrawal); err != nil {
		return nil, &PersistenceError{Op: "record withdrawal", Inconsistent: true, Err: err}
	}

	history := &models.BalanceHistory{
		ActorType:       models.ActorAgent,
		ActorID:         agentID,
		BalanceBefore:   amount,
		BalanceAfter:    0,
		ChangeAmount:    -amount,
		TransactionType: models.TransactionTypeWithdrawal,
		TransactionMetadata: map[string]any{
			"tx_hash":    txHash,
			"to_address": toAddress,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, &PersistenceError{Op: "record balance change", Inconsistent: true, Err: err}
	}

	if err := uow.Commit(); err != nil {
		return nil, &PersistenceError{Op: "commit claim", Inconsistent: true, Err: err}
	}

	log.WithFields(log.Fields{
		"agentId": agentID,
		"amount":  amount,
		"txHash":  txHash,
		"to":      toAddress,
	}).Info("Paid out agent balance")

	return withdrawal, nil
}

// ListWithdrawals returns an agent's past claims, newest first.
func (s *withdrawalService) ListWithdrawals(ctx context.Context, agentID uuid.UUID, limit int) ([]*models.Withdrawal, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin withdrawal history read", Err: err}
	}
	defer uow.Rollback()

	withdrawals, err := uow.WithdrawalRepository().GetByAgent(ctx, agentID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "read withdrawal history", Err: err}
	}
	return withdrawals, nil
}
