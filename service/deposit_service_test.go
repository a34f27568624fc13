package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"casino/models"
)

func TestDepositService_CreditDeposit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockPlayerRepo := new(MockPlayerRepository)
	mockDepositRepo := new(MockDepositRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockTreasury := new(MockFundsTransfer)

	mockUoW.SetRepositories(mockPlayerRepo, nil, nil, mockDepositRepo, nil, mockHistoryRepo)

	svc := NewDepositService(mockFactory, mockTreasury)

	playerID := uuid.New()
	player := &models.Player{
		ID:      playerID,
		Address: "0xabc",
		Balance: 1000,
	}

	mockTreasury.On("VerifyDeposit", ctx, "0xtx1").Return(int64(2500), "0xsender", nil)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockDepositRepo.On("GetByTxHash", ctx, "0xtx1").Return(nil, nil)
	mockPlayerRepo.On("GetByID", ctx, playerID).Return(player, nil)
	mockDepositRepo.On("Create", ctx, mock.MatchedBy(func(d *models.Deposit) bool {
		return d.PlayerID == playerID &&
			d.Amount == 2500 &&
			d.TxHash == "0xtx1" &&
			d.FromAddress == "0xsender" &&
			d.Status == models.TransferConfirmed
	})).Return(nil)
	mockPlayerRepo.On("AddBalance", ctx, playerID, int64(2500)).Return(nil)
	mockHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.BalanceBefore == 1000 &&
			h.BalanceAfter == 3500 &&
			h.ChangeAmount == 2500 &&
			h.TransactionType == models.TransactionTypeDeposit
	})).Return(nil)

	deposit, err := svc.CreditDeposit(ctx, playerID, "0xtx1")

	assert.NoError(t, err)
	assert.Equal(t, int64(2500), deposit.Amount)

	mockTreasury.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockDepositRepo.AssertExpectations(t)
	mockPlayerRepo.AssertExpectations(t)
	mockHistoryRepo.AssertExpectations(t)
}

func TestDepositService_CreditDeposit_AlreadyCredited(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockDepositRepo := new(MockDepositRepository)
	mockTreasury := new(MockFundsTransfer)

	mockUoW.SetRepositories(nil, nil, nil, mockDepositRepo, nil, nil)

	svc := NewDepositService(mockFactory, mockTreasury)

	playerID := uuid.New()
	mockTreasury.On("VerifyDeposit", ctx, "0xtx1").Return(int64(2500), "0xsender", nil)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockDepositRepo.On("GetByTxHash", ctx, "0xtx1").Return(&models.Deposit{
		ID:     1,
		TxHash: "0xtx1",
	}, nil)

	deposit, err := svc.CreditDeposit(ctx, playerID, "0xtx1")

	assert.Nil(t, deposit)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	// The second submission credits nothing
	mockUoW.AssertNotCalled(t, "Commit")
	mockDepositRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDepositService_CreditDeposit_VerificationFails(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	mockTreasury := new(MockFundsTransfer)

	svc := NewDepositService(mockFactory, mockTreasury)

	mockTreasury.On("VerifyDeposit", ctx, "0xbogus").
		Return(int64(0), "", errors.New("unknown transaction"))

	deposit, err := svc.CreditDeposit(ctx, uuid.New(), "0xbogus")

	assert.Nil(t, deposit)
	var terr *ExternalTransferError
	assert.True(t, errors.As(err, &terr))

	// No local state is touched on verification failure
	mockFactory.AssertNotCalled(t, "Create")
}

func TestDepositService_CreditDeposit_BelowMinimum(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	mockTreasury := new(MockFundsTransfer)

	svc := NewDepositService(mockFactory, mockTreasury)

	mockTreasury.On("VerifyDeposit", ctx, "0xdust").Return(int64(99), "0xsender", nil)

	deposit, err := svc.CreditDeposit(ctx, uuid.New(), "0xdust")

	assert.Nil(t, deposit)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	mockFactory.AssertNotCalled(t, "Create")
}
