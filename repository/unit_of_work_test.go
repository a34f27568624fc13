package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino/events"
	"casino/models"
	"casino/repository/testutil"
)

func TestUnitOfWork_CommitMakesChangesVisible(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	player, err := uow.PlayerRepository().GetOrCreate(ctx, "0xuowcommit")
	require.NoError(t, err)
	require.NoError(t, uow.PlayerRepository().AddBalance(ctx, player.ID, 1000))

	require.NoError(t, uow.Commit())

	outside := NewPlayerRepository(testDB.DB)
	balance, err := outside.GetBalance(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	player, err := uow.PlayerRepository().GetOrCreate(ctx, "0xuowrollback")
	require.NoError(t, err)

	require.NoError(t, uow.Rollback())

	outside := NewPlayerRepository(testDB.DB)
	found, err := outside.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUnitOfWork_EventsFollowTransactionOutcome(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	var mu sync.Mutex
	var received []events.Event
	bus.Subscribe(events.EventTypeBetSettled, func(_ context.Context, e events.Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	t.Run("discarded on rollback", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		uow.EventBus().Publish(events.BetSettledEvent{GameID: uuid.New()})
		require.NoError(t, uow.Rollback())

		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		assert.Empty(t, received)
		mu.Unlock()
	})

	t.Run("flushed on commit", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		uow.EventBus().Publish(events.BetSettledEvent{GameID: uuid.New()})
		require.NoError(t, uow.Commit())

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) == 1
		}, time.Second, 10*time.Millisecond)
	})
}

func TestUnitOfWork_SettlementIsAtomic(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	setup := factory.Create()
	require.NoError(t, setup.Begin(ctx))
	player, err := setup.PlayerRepository().GetOrCreate(ctx, "0xatomic")
	require.NoError(t, err)
	require.NoError(t, setup.PlayerRepository().AddBalance(ctx, player.ID, 1000))
	require.NoError(t, setup.Commit())

	// A settlement that writes the game record but fails the balance guard
	// must leave no trace of either.
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	gameID := uuid.New()
	game := &models.Game{
		ID:        gameID,
		PlayerID:  &player.ID,
		ActorType: models.ActorPlayer,
		GameType:  models.GameCoinflip,
		Wager:     5000,
		Outcome:   models.OutcomeLose,
		SeedHash:  "hash",
		Seed:      "seed",
		SessionID: "session",
	}
	require.NoError(t, uow.GameRepository().Create(ctx, game))

	err = uow.PlayerRepository().ApplyBetEffect(ctx, player.ID, -5000, models.StatsUpdate{WageredDelta: 5000})
	require.Error(t, err)
	require.NoError(t, uow.Rollback())

	games := NewGameRepository(testDB.DB)
	found, err := games.GetByID(ctx, gameID)
	require.NoError(t, err)
	assert.Nil(t, found)

	players := NewPlayerRepository(testDB.DB)
	balance, err := players.GetBalance(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}
