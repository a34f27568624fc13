package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"casino/config"
	"casino/engine"
	"casino/events"
	"casino/models"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory

	// newSeed is swapped for a fixed source in tests
	newSeed func() (engine.SeedPair, error)
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
		newSeed:    engine.NewSeedPair,
	}
}

// validateBet checks the request shape before any state is touched.
func validateBet(actor *models.Actor, req *BetRequest) error {
	cfg := config.Get()

	if !req.GameType.Valid() {
		return NewValidationError("gameType", "unknown game %q", req.GameType)
	}

	if req.Freeroll {
		if actor.Type != models.ActorAgent {
			return NewValidationError("freeroll", "freerolls are only available to agents")
		}
	} else {
		if req.Wager < cfg.MinBet {
			return NewValidationError("wager", "minimum bet is %d cents", cfg.MinBet)
		}
		if req.Wager > cfg.MaxBet {
			return NewValidationError("wager", "maximum bet is %d cents", cfg.MaxBet)
		}
	}

	switch req.GameType {
	case models.GameCoinflip:
		if !req.Choice.Valid() {
			return NewValidationError("choice", "must be heads or tails")
		}
	case models.GameDice:
		if req.Target < engine.DiceTargetMin || req.Target > engine.DiceTargetMax {
			return NewValidationError("target", "must be between %d and %d", engine.DiceTargetMin, engine.DiceTargetMax)
		}
		if !req.Direction.Valid() {
			return NewValidationError("direction", "must be over or under")
		}
	case models.GameRoulette:
		if !req.BetType.Valid() {
			return NewValidationError("betType", "unknown roulette bet %q", req.BetType)
		}
		if req.BetType == engine.BetStraight && (req.Number < 0 || req.Number > 36) {
			return NewValidationError("number", "straight bets cover 0 through 36")
		}
	}

	return nil
}

// play resolves the bet from the revealed seed. Pure and replayable: the
// same seed and request always produce the same outcome, payout and data.
func play(seed string, req *BetRequest) (models.Outcome, int64, map[string]any) {
	switch req.GameType {
	case models.GameCoinflip:
		r := engine.PlayCoinflip(seed, req.Choice)
		outcome := models.OutcomeLose
		if r.Won {
			outcome = models.OutcomeWin
		}
		return outcome, engine.CoinflipPayout(req.Wager, r.Won), map[string]any{
			"choice": r.Choice,
			"result": r.Result,
			"won":    r.Won,
		}

	case models.GameDice:
		r := engine.PlayDice(seed, int(req.Target), req.Direction)
		outcome := models.OutcomeLose
		if r.Won {
			outcome = models.OutcomeWin
		}
		return outcome, engine.DicePayout(req.Wager, r), map[string]any{
			"target":     r.Target,
			"direction":  r.Direction,
			"roll":       r.Roll,
			"won":        r.Won,
			"multiplier": r.Multiplier,
		}

	case models.GameBlackjack:
		r := engine.PlayBlackjack(seed)
		var outcome models.Outcome
		switch r.Outcome {
		case engine.OutcomeBlackjack, engine.OutcomeWin:
			outcome = models.OutcomeWin
		case engine.OutcomePush:
			outcome = models.OutcomePush
		default:
			outcome = models.OutcomeLose
		}
		return outcome, engine.BlackjackPayout(req.Wager, r.Outcome), map[string]any{
			"playerCards": r.PlayerCards,
			"dealerCards": r.DealerCards,
			"playerTotal": r.PlayerTotal,
			"dealerTotal": r.DealerTotal,
			"result":      r.Outcome,
		}

	case models.GameRoulette:
		r := engine.PlayRoulette(seed, req.BetType, req.Number)
		outcome := models.OutcomeLose
		if r.Won {
			outcome = models.OutcomeWin
		}
		return outcome, engine.RoulettePayout(req.Wager, r), map[string]any{
			"betType":    r.BetType,
			"number":     r.Number,
			"spinResult": r.Spin,
			"color":      r.Color,
			"won":        r.Won,
			"multiplier": r.Multiplier,
		}
	}

	// validateBet rejects unknown game types before play is reached
	panic(fmt.Sprintf("unplayable game type %q", req.GameType))
}

// betProfit computes the balance delta for a settled bet. Pushes always net
// zero. Freerolls risk nothing, so a losing freeroll also nets zero.
func betProfit(outcome models.Outcome, wager, payout int64, freeroll bool) int64 {
	if freeroll {
		if outcome == models.OutcomeWin {
			return payout
		}
		return 0
	}
	return payout - wager
}

func (s *bettingService) PlaceBet(ctx context.Context, actor *models.Actor, req *BetRequest) (*models.BetResult, error) {
	if err := validateBet(actor, req); err != nil {
		return nil, err
	}

	cfg := config.Get()
	if req.Freeroll {
		// Freerolls always play the fixed stake, and the cheap check here
		// fails fast; ConsumeFreeroll below is the authoritative guard.
		req.Wager = cfg.FreerollCents
		if actor.FreerollUsed {
			return nil, ErrFreerollUnavailable
		}
	}

	seedPair, err := s.newSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}

	outcome, payout, resultData := play(seedPair.Seed, req)
	profit := betProfit(outcome, req.Wager, payout, req.Freeroll)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin settlement", Err: err}
	}
	defer uow.Rollback()

	balanceBefore, err := s.actorBalance(ctx, uow, actor)
	if err != nil {
		return nil, &PersistenceError{Op: "read balance", Err: err}
	}
	if !req.Freeroll && balanceBefore < req.Wager {
		return nil, ErrInsufficientBalance
	}

	stats := models.StatsUpdate{
		PayoutDelta: 0,
		Won:         outcome == models.OutcomeWin,
		Push:        outcome == models.OutcomePush,
	}
	if !req.Freeroll {
		stats.WageredDelta = req.Wager
	}
	if outcome == models.OutcomeWin || outcome == models.OutcomePush {
		stats.PayoutDelta = payout
	}

	game := &models.Game{
		ID:         uuid.New(),
		ActorType:  actor.Type,
		GameType:   req.GameType,
		Wager:      req.Wager,
		Outcome:    outcome,
		Payout:     payout,
		Profit:     profit,
		IsFreeroll: req.Freeroll,
		SeedHash:   seedPair.SeedHash,
		Seed:       seedPair.Seed,
		SessionID:  engine.NewSessionID(),
		ResultData: resultData,
	}
	if actor.Type == models.ActorPlayer {
		game.PlayerID = &actor.ID
	} else {
		game.AgentID = &actor.ID
	}

	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return nil, &PersistenceError{Op: "record bet", Err: err}
	}

	if req.Freeroll {
		if err := uow.AgentRepository().ConsumeFreeroll(ctx, actor.ID, stats.Won); err != nil {
			return nil, err
		}
		uow.EventBus().Publish(events.FreerollConsumedEvent{
			AgentID: actor.ID,
			Won:     stats.Won,
		})
	}

	if err := s.applyBetEffect(ctx, uow, actor, profit, stats); err != nil {
		return nil, err
	}

	transactionType := models.TransactionTypeBetLoss
	switch {
	case req.Freeroll:
		transactionType = models.TransactionTypeFreeroll
	case outcome == models.OutcomeWin:
		transactionType = models.TransactionTypeBetWin
	case outcome == models.OutcomePush:
		transactionType = models.TransactionTypeBetPush
	}

	history := &models.BalanceHistory{
		ActorType:       actor.Type,
		ActorID:         actor.ID,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceBefore + profit,
		ChangeAmount:    profit,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"game_type": req.GameType,
			"wager":     req.Wager,
			"outcome":   outcome,
		},
		RelatedGameID: &game.ID,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, &PersistenceError{Op: "record balance change", Err: err}
	}

	uow.EventBus().Publish(events.BetSettledEvent{
		GameID:     game.ID,
		ActorType:  actor.Type,
		ActorID:    actor.ID,
		GameType:   req.GameType,
		Wager:      req.Wager,
		Outcome:    outcome,
		Payout:     payout,
		Profit:     profit,
		IsFreeroll: req.Freeroll,
		SettledAt:  time.Now(),
	})

	if err := uow.Commit(); err != nil {
		return nil, &PersistenceError{Op: "commit settlement", Err: err}
	}

	log.WithFields(log.Fields{
		"gameId":   game.ID,
		"actor":    actor.ID,
		"gameType": req.GameType,
		"wager":    req.Wager,
		"outcome":  outcome,
		"payout":   payout,
		"freeroll": req.Freeroll,
	}).Info("Bet settled")

	return &models.BetResult{
		GameID:     game.ID,
		GameType:   req.GameType,
		Outcome:    outcome,
		Payout:     payout,
		Profit:     profit,
		IsFreeroll: req.Freeroll,
		SeedHash:   seedPair.SeedHash,
		Seed:       seedPair.Seed,
		SessionID:  game.SessionID,
		ResultData: resultData,
		NewBalance: balanceBefore + profit,
	}, nil
}

func (s *bettingService) actorBalance(ctx context.Context, uow UnitOfWork, actor *models.Actor) (int64, error) {
	if actor.Type == models.ActorPlayer {
		return uow.PlayerRepository().GetBalance(ctx, actor.ID)
	}
	return uow.AgentRepository().GetBalance(ctx, actor.ID)
}

func (s *bettingService) applyBetEffect(ctx context.Context, uow UnitOfWork, actor *models.Actor, profit int64, stats models.StatsUpdate) error {
	if actor.Type == models.ActorPlayer {
		return uow.PlayerRepository().ApplyBetEffect(ctx, actor.ID, profit, stats)
	}
	return uow.AgentRepository().ApplyBetEffect(ctx, actor.ID, profit, stats)
}

// VerifyBet replays a settled bet from its revealed seed and compares the
// recomputed outcome and payout against the stored record.
func (s *bettingService) VerifyBet(ctx context.Context, gameID uuid.UUID) (*models.VerifyResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin verification", Err: err}
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, &PersistenceError{Op: "load bet", Err: err}
	}
	if game == nil {
		return nil, NewValidationError("gameId", "no bet with id %s", gameID)
	}

	req, err := requestFromRecord(game)
	if err != nil {
		return nil, err
	}

	replayOutcome, replayPayout, _ := play(game.Seed, req)
	seedMatch := engine.VerifySeed(game.Seed, game.SeedHash)
	outcomeMatch := replayOutcome == game.Outcome && replayPayout == game.Payout

	return &models.VerifyResult{
		GameID:         game.ID,
		Valid:          seedMatch && outcomeMatch,
		SeedMatch:      seedMatch,
		OutcomeMatch:   outcomeMatch,
		SeedHash:       game.SeedHash,
		Seed:           game.Seed,
		StoredOutcome:  game.Outcome,
		ReplayOutcome:  replayOutcome,
		StoredPayout:   game.Payout,
		ReplayedPayout: replayPayout,
	}, nil
}

// requestFromRecord reconstructs the bet parameters from a stored record's
// result data. JSONB numbers come back as float64.
func requestFromRecord(game *models.Game) (*BetRequest, error) {
	req := &BetRequest{
		GameType: game.GameType,
		Wager:    game.Wager,
		Freeroll: game.IsFreeroll,
	}

	switch game.GameType {
	case models.GameCoinflip:
		choice, ok := game.ResultData["choice"].(string)
		if !ok {
			return nil, NewValidationError("resultData", "bet %s is missing its choice", game.ID)
		}
		req.Choice = engine.CoinSide(choice)

	case models.GameDice:
		target, ok := game.ResultData["target"].(float64)
		if !ok {
			return nil, NewValidationError("resultData", "bet %s is missing its target", game.ID)
		}
		direction, ok := game.ResultData["direction"].(string)
		if !ok {
			return nil, NewValidationError("resultData", "bet %s is missing its direction", game.ID)
		}
		req.Target = int64(target)
		req.Direction = engine.Direction(direction)

	case models.GameRoulette:
		betType, ok := game.ResultData["betType"].(string)
		if !ok {
			return nil, NewValidationError("resultData", "bet %s is missing its bet type", game.ID)
		}
		req.BetType = engine.RouletteBetType(betType)
		if number, ok := game.ResultData["number"].(float64); ok {
			req.Number = int(number)
		}
	}

	return req, nil
}
