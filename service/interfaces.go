package service

import (
	"context"

	"github.com/google/uuid"

	"casino/engine"
	"casino/events"
	"casino/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// GetByAddress retrieves a player by wallet address, nil if not found
	GetByAddress(ctx context.Context, address string) (*models.Player, error)

	// GetByID retrieves a player by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)

	// GetOrCreate retrieves an existing player or creates one for the address
	GetOrCreate(ctx context.Context, address string) (*models.Player, error)

	// GetBalance returns the player's current balance
	GetBalance(ctx context.Context, id uuid.UUID) (int64, error)

	// AddBalance adds to a player's balance atomically, failing if the result would go negative
	AddBalance(ctx context.Context, id uuid.UUID, amount int64) error

	// ApplyBetEffect applies a settled bet's balance and stats mutation in one statement
	ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error
}

// AgentRepository defines the interface for agent data access
type AgentRepository interface {
	// Create registers a new agent
	Create(ctx context.Context, name *string, apiKey, walletAddress string, withdrawAddress *string) (*models.Agent, error)

	// GetByAPIKey retrieves an agent by API key, nil if not found
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Agent, error)

	// GetByWallet retrieves an agent by wallet address, nil if not found
	GetByWallet(ctx context.Context, address string) (*models.Agent, error)

	// GetByID retrieves an agent by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)

	// GetBalance returns the agent's current balance
	GetBalance(ctx context.Context, id uuid.UUID) (int64, error)

	// ApplyBetEffect applies a settled bet's balance and stats mutation in one statement
	ApplyBetEffect(ctx context.Context, id uuid.UUID, profit int64, stats models.StatsUpdate) error

	// ConsumeFreeroll marks the one-time freeroll as used, failing if already consumed
	ConsumeFreeroll(ctx context.Context, id uuid.UUID, won bool) error

	// ZeroBalance sets the balance to zero only if it still equals expected
	ZeroBalance(ctx context.Context, id uuid.UUID, expected int64) error

	// SetWithdrawAddress updates the agent's payout address
	SetWithdrawAddress(ctx context.Context, id uuid.UUID, address string) error
}

// GameRepository defines the interface for the append-only bet log
type GameRepository interface {
	// Create appends a settled bet record
	Create(ctx context.Context, game *models.Game) error

	// GetByID retrieves a bet record by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)

	// GetByActor returns an actor's bets, newest first
	GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.Game, error)

	// GetRecentWins returns the most recent winning bets
	GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, error)

	// GetCasinoStats returns house-wide aggregates
	GetCasinoStats(ctx context.Context) (*models.CasinoStats, error)

	// GetLeaderboard returns the top actors ranked by total won
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// DepositRepository defines the interface for inbound transfer records
type DepositRepository interface {
	// GetByTxHash retrieves a deposit by transaction hash, nil if not seen
	GetByTxHash(ctx context.Context, txHash string) (*models.Deposit, error)

	// Create records a credited deposit
	Create(ctx context.Context, deposit *models.Deposit) error
}

// WithdrawalRepository defines the interface for outbound transfer records
type WithdrawalRepository interface {
	// Create records a completed withdrawal
	Create(ctx context.Context, withdrawal *models.Withdrawal) error

	// GetByAgent returns an agent's withdrawals, newest first
	GetByAgent(ctx context.Context, agentID uuid.UUID, limit int) ([]*models.Withdrawal, error)
}

// BalanceHistoryRepository defines the interface for balance change tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByActor returns an actor's balance changes, newest first
	GetByActor(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.BalanceHistory, error)
}

// BetRequest carries one bet's parameters through validation and play.
// Game-specific fields are only read for the matching GameType.
type BetRequest struct {
	GameType models.GameType
	Wager    int64
	Freeroll bool

	// Coinflip
	Choice engine.CoinSide

	// Dice
	Target    int64
	Direction engine.Direction

	// Roulette
	BetType engine.RouletteBetType
	Number  int
}

// BettingService defines the interface for placing and settling bets
type BettingService interface {
	// PlaceBet validates, plays and settles one bet for the actor
	PlaceBet(ctx context.Context, actor *models.Actor, req *BetRequest) (*models.BetResult, error)

	// VerifyBet replays a settled bet from its revealed seed and reports
	// whether the stored outcome matches
	VerifyBet(ctx context.Context, gameID uuid.UUID) (*models.VerifyResult, error)
}

// AccountService defines the interface for player and agent accounts
type AccountService interface {
	// GetOrCreatePlayer retrieves or creates the player for a wallet address
	GetOrCreatePlayer(ctx context.Context, address string) (*models.Player, error)

	// RegisterAgent creates a new agent with a fresh API key and deposit wallet
	RegisterAgent(ctx context.Context, name *string, withdrawAddress *string) (*models.Agent, error)

	// AuthenticateAgent resolves an API key to an active agent
	AuthenticateAgent(ctx context.Context, apiKey string) (*models.Agent, error)

	// GetAgent retrieves an agent by ID
	GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error)
}

// DepositService defines the interface for crediting inbound transfers
type DepositService interface {
	// CreditDeposit verifies an on-chain transfer and credits it exactly once
	CreditDeposit(ctx context.Context, playerID uuid.UUID, txHash string) (*models.Deposit, error)
}

// WithdrawalService defines the interface for paying out balances
type WithdrawalService interface {
	// ClaimBalance sends the agent's full balance to its withdraw address,
	// zeroing the local balance only after the transfer succeeds
	ClaimBalance(ctx context.Context, agentID uuid.UUID) (*models.Withdrawal, error)

	// ListWithdrawals returns an agent's past claims, newest first
	ListWithdrawals(ctx context.Context, agentID uuid.UUID, limit int) ([]*models.Withdrawal, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	// GetLeaderboard returns the top actors with their statistics
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// GetCasinoStats returns house-wide aggregates
	GetCasinoStats(ctx context.Context) (*models.CasinoStats, error)

	// GetRecentWins returns the most recent winning bets
	GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, error)

	// GetActorGames returns an actor's bet history, newest first
	GetActorGames(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.Game, error)

	// GetActorBalanceHistory returns an actor's balance changes, newest first
	GetActorBalanceHistory(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.BalanceHistory, error)
}

// StatsCache caches aggregate reads. Implementations degrade to a miss
// rather than fail, so a nil-safe caller can always fall through to the
// database.
type StatsCache interface {
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, bool)
	SetLeaderboard(ctx context.Context, limit int, entries []*models.LeaderboardEntry)
	GetCasinoStats(ctx context.Context) (*models.CasinoStats, bool)
	SetCasinoStats(ctx context.Context, stats *models.CasinoStats)
	GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, bool)
	SetRecentWins(ctx context.Context, limit int, wins []*models.RecentWin)
	InvalidateStats(ctx context.Context)
}

// FundsTransfer moves money on-chain through the treasury. Implementations
// must be safe to call before any local state is mutated.
type FundsTransfer interface {
	// VerifyDeposit confirms a transaction paid the casino's deposit address
	// and returns the amount in cents and the sender address
	VerifyDeposit(ctx context.Context, txHash string) (amount int64, fromAddress string, err error)

	// Send transfers amount cents to the given address and returns the
	// transaction hash
	Send(ctx context.Context, toAddress string, amount int64) (txHash string, err error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	PlayerRepository() PlayerRepository
	AgentRepository() AgentRepository
	GameRepository() GameRepository
	DepositRepository() DepositRepository
	WithdrawalRepository() WithdrawalRepository
	BalanceHistoryRepository() BalanceHistoryRepository

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
