package service

import (
	"context"

	"github.com/google/uuid"

	"casino/models"
)

type statsService struct {
	uowFactory UnitOfWorkFactory
	cache      StatsCache
}

// NewStatsService creates a new stats service. cache may be nil, in which
// case every read goes to the database.
func NewStatsService(uowFactory UnitOfWorkFactory, cache StatsCache) StatsService {
	return &statsService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.cache != nil {
		if entries, ok := s.cache.GetLeaderboard(ctx, limit); ok {
			return entries, nil
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin leaderboard read", Err: err}
	}
	defer uow.Rollback()

	entries, err := uow.GameRepository().GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "read leaderboard", Err: err}
	}

	if s.cache != nil {
		s.cache.SetLeaderboard(ctx, limit, entries)
	}
	return entries, nil
}

func (s *statsService) GetCasinoStats(ctx context.Context) (*models.CasinoStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetCasinoStats(ctx); ok {
			return stats, nil
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin stats read", Err: err}
	}
	defer uow.Rollback()

	stats, err := uow.GameRepository().GetCasinoStats(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "read casino stats", Err: err}
	}

	if s.cache != nil {
		s.cache.SetCasinoStats(ctx, stats)
	}
	return stats, nil
}

func (s *statsService) GetRecentWins(ctx context.Context, limit int) ([]*models.RecentWin, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	if s.cache != nil {
		if wins, ok := s.cache.GetRecentWins(ctx, limit); ok {
			return wins, nil
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin wins read", Err: err}
	}
	defer uow.Rollback()

	wins, err := uow.GameRepository().GetRecentWins(ctx, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "read recent wins", Err: err}
	}

	if s.cache != nil {
		s.cache.SetRecentWins(ctx, limit, wins)
	}
	return wins, nil
}

// GetActorGames returns one actor's bet history, newest first. History reads
// are per-actor and uncached.
func (s *statsService) GetActorGames(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.Game, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin game history read", Err: err}
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().GetByActor(ctx, actorType, actorID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "read game history", Err: err}
	}
	return games, nil
}

// GetActorBalanceHistory returns one actor's balance changes, newest first.
func (s *statsService) GetActorBalanceHistory(ctx context.Context, actorType models.ActorType, actorID uuid.UUID, limit int) ([]*models.BalanceHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin balance history read", Err: err}
	}
	defer uow.Rollback()

	history, err := uow.BalanceHistoryRepository().GetByActor(ctx, actorType, actorID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "read balance history", Err: err}
	}
	return history, nil
}
