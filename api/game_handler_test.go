package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"casino/engine"
	"casino/models"
	"casino/service"
)

func TestCoinflip_RequiresAuth(t *testing.T) {
	router, s := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/games/coinflip", map[string]any{
		"wager":  1000,
		"choice": "heads",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	s.betting.AssertNotCalled(t, "PlaceBet", mock.Anything, mock.Anything, mock.Anything)
}

func TestCoinflip_PlacesBetForAuthenticatedPlayer(t *testing.T) {
	router, s := newTestRouter(t)

	playerID := uuid.New()
	gameID := uuid.New()
	token := playerToken(t, s.tokens, playerID, "0xplayer")

	s.betting.On("PlaceBet", mock.Anything,
		mock.MatchedBy(func(actor *models.Actor) bool {
			return actor.Type == models.ActorPlayer && actor.ID == playerID
		}),
		mock.MatchedBy(func(req *service.BetRequest) bool {
			return req.GameType == models.GameCoinflip &&
				req.Wager == 1000 &&
				req.Choice == engine.Heads &&
				!req.Freeroll
		}),
	).Return(&models.BetResult{
		GameID:     gameID,
		GameType:   models.GameCoinflip,
		Outcome:    models.OutcomeWin,
		Payout:     1960,
		Profit:     960,
		NewBalance: 1960,
	}, nil)

	w := doJSON(router, http.MethodPost, "/games/coinflip", map[string]any{
		"wager":  1000,
		"choice": "heads",
	}, map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, http.StatusOK, w.Code)

	var result models.BetResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, gameID, result.GameID)
	assert.Equal(t, models.OutcomeWin, result.Outcome)
	assert.Equal(t, int64(1960), result.Payout)
	s.betting.AssertExpectations(t)
}

func TestDice_PassesTargetAndDirection(t *testing.T) {
	router, s := newTestRouter(t)

	token := playerToken(t, s.tokens, uuid.New(), "0xplayer")

	s.betting.On("PlaceBet", mock.Anything, mock.Anything,
		mock.MatchedBy(func(req *service.BetRequest) bool {
			return req.GameType == models.GameDice &&
				req.Target == 75 &&
				req.Direction == engine.Over
		}),
	).Return(&models.BetResult{GameType: models.GameDice, Outcome: models.OutcomeLose}, nil)

	w := doJSON(router, http.MethodPost, "/games/dice", map[string]any{
		"wager":     500,
		"target":    75,
		"direction": "over",
	}, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, w.Code)
	s.betting.AssertExpectations(t)
}

func TestDice_MissingDirectionRejectedBeforeService(t *testing.T) {
	router, s := newTestRouter(t)

	token := playerToken(t, s.tokens, uuid.New(), "0xplayer")

	w := doJSON(router, http.MethodPost, "/games/dice", map[string]any{
		"wager":  500,
		"target": 75,
	}, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.betting.AssertNotCalled(t, "PlaceBet", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoulette_AgentFreerollViaAPIKey(t *testing.T) {
	router, s := newTestRouter(t)

	agent := &models.Agent{
		ID:            uuid.New(),
		APIKey:        "ck_agent_test",
		WalletAddress: "0xagent",
		IsActive:      true,
	}
	s.accounts.On("AuthenticateAgent", mock.Anything, "ck_agent_test").Return(agent, nil)

	s.betting.On("PlaceBet", mock.Anything,
		mock.MatchedBy(func(actor *models.Actor) bool {
			return actor.Type == models.ActorAgent && actor.ID == agent.ID
		}),
		mock.MatchedBy(func(req *service.BetRequest) bool {
			return req.GameType == models.GameRoulette &&
				req.BetType == engine.BetStraight &&
				req.Number == 7 &&
				req.Freeroll
		}),
	).Return(&models.BetResult{
		GameType:   models.GameRoulette,
		Outcome:    models.OutcomeWin,
		Payout:     17500,
		IsFreeroll: true,
	}, nil)

	w := doJSON(router, http.MethodPost, "/agents/games/roulette", map[string]any{
		"wager":    500,
		"betType":  "straight",
		"number":   7,
		"freeroll": true,
	}, map[string]string{"x-api-key": "ck_agent_test"})

	assert.Equal(t, http.StatusOK, w.Code)
	s.betting.AssertExpectations(t)
}

func TestPlaceBet_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient balance", service.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"freeroll already used", service.ErrFreerollUnavailable, http.StatusConflict},
		{"validation", service.NewValidationError("wager", "wager must be at least 100"), http.StatusBadRequest},
		{"persistence", &service.PersistenceError{Op: "settle bet"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, s := newTestRouter(t)
			token := playerToken(t, s.tokens, uuid.New(), "0xplayer")

			s.betting.On("PlaceBet", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doJSON(router, http.MethodPost, "/games/coinflip", map[string]any{
				"wager":  1000,
				"choice": "heads",
			}, map[string]string{"Authorization": "Bearer " + token})

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestVerify_IsPublic(t *testing.T) {
	router, s := newTestRouter(t)

	gameID := uuid.New()
	s.betting.On("VerifyBet", mock.Anything, gameID).Return(&models.VerifyResult{
		GameID:       gameID,
		Valid:        true,
		SeedMatch:    true,
		OutcomeMatch: true,
	}, nil)

	w := doJSON(router, http.MethodGet, "/verify/"+gameID.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.VerifyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Valid)
}

func TestVerify_BadID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/verify/not-a-uuid", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameInfo(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/games/dice/info", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Game string `json:"game"`
		Info struct {
			Description string  `json:"description"`
			HouseEdge   float64 `json:"houseEdge"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dice", body.Game)
	assert.Equal(t, 0.01, body.Info.HouseEdge)
	// The described roll range must match what the engine actually rolls.
	assert.Contains(t, body.Info.Description, "1-100")

	unknown := doJSON(router, http.MethodGet, "/games/baccarat/info", nil, nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)
}

func TestLimits(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/limits", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		MinBet        int64    `json:"minBet"`
		MaxBet        int64    `json:"maxBet"`
		FreerollCents int64    `json:"freerollCents"`
		Games         []string `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.MinBet)
	assert.Equal(t, int64(1_000_000), body.MaxBet)
	assert.Equal(t, int64(500), body.FreerollCents)
	assert.Len(t, body.Games, 4)
}
