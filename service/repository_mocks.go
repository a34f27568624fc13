package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"casino/events"
	"casino/models"
)

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByAddress(ctx context.Context, address string) (*models.Player, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetOrCreate(ctx context.Context, address string) (*models.Player, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlayerRepository) AddBalance(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockPlayerRepository) ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error {
	args := m.Called(ctx, id, profit, stats)
	return args.Error(0)
}

// MockAgentRepository is a mock implementation of AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, name *string, apiKey, walletAddress string, withdrawAddress *string) (*models.Agent, error) {
	args := m.Called(ctx, name, apiKey, walletAddress, withdrawAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Agent, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByWallet(ctx context.Context, address string) (*models.Agent, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAgentRepository) ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error {
	args := m.Called(ctx, id, profit, stats)
	return args.Error(0)
}

func (m *MockAgentRepository) ConsumeFreeroll(ctx context.Context, id uuid.UUID, won bool) error {
	args := m.Called(ctx, id, won)
	return args.Error(0)
}

func (m *MockAgentRepository) ZeroBalance(ctx context.Context, id uuid.UUID, expected int64) error {
	args := m.Called(ctx, id, expected)
	return args.Error(0)
}

func (m *MockAgentRepository) SetWithdrawAddress(ctx context.Context, id uuid.UUID, address string) error {
	args := m.Called(ctx, id, address)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.Game, error) {
	args := m.Called(ctx, actorType, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *MockGameRepository) GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecentWin), args.Error(1)
}

func (m *MockGameRepository) GetCasinoStats(ctx context.Context) (*models.CasinoStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CasinoStats), args.Error(1)
}

func (m *MockGameRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockDepositRepository is a mock implementation of DepositRepository
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) GetByTxHash(ctx context.Context, txHash string) (*models.Deposit, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deposit), args.Error(1)
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByAgent(ctx context.Context, agentID uuid.UUID, limit int) ([]*models.Withdrawal, error) {
	args := m.Called(ctx, agentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Withdrawal), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, actorType, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockFundsTransfer is a mock implementation of FundsTransfer
type MockFundsTransfer struct {
	mock.Mock
}

func (m *MockFundsTransfer) VerifyDeposit(ctx context.Context, txHash string) (int64, string, error) {
	args := m.Called(ctx, txHash)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockFundsTransfer) Send(ctx context.Context, toAddress string, amount int64) (string, error) {
	args := m.Called(ctx, toAddress, amount)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// nopEventPublisher discards events, for tests that don't assert on them.
type nopEventPublisher struct{}

func (nopEventPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// attached with SetRepositories; unneeded ones may be nil.
type MockUnitOfWork struct {
	mock.Mock

	playerRepo         PlayerRepository
	agentRepo          AgentRepository
	gameRepo           GameRepository
	depositRepo        DepositRepository
	withdrawalRepo     WithdrawalRepository
	balanceHistoryRepo BalanceHistoryRepository
	eventBus           EventPublisher
}

// SetRepositories attaches the repository doubles this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(
	playerRepo PlayerRepository,
	agentRepo AgentRepository,
	gameRepo GameRepository,
	depositRepo DepositRepository,
	withdrawalRepo WithdrawalRepository,
	balanceHistoryRepo BalanceHistoryRepository,
) {
	m.playerRepo = playerRepo
	m.agentRepo = agentRepo
	m.gameRepo = gameRepo
	m.depositRepo = depositRepo
	m.withdrawalRepo = withdrawalRepo
	m.balanceHistoryRepo = balanceHistoryRepo
}

// SetEventBus attaches an event publisher; events are discarded when unset
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PlayerRepository() PlayerRepository {
	return m.playerRepo
}

func (m *MockUnitOfWork) AgentRepository() AgentRepository {
	return m.agentRepo
}

func (m *MockUnitOfWork) GameRepository() GameRepository {
	return m.gameRepo
}

func (m *MockUnitOfWork) DepositRepository() DepositRepository {
	return m.depositRepo
}

func (m *MockUnitOfWork) WithdrawalRepository() WithdrawalRepository {
	return m.withdrawalRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.balanceHistoryRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return nopEventPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
