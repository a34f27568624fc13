package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"casino/config"
	"casino/engine"
	"casino/models"
	"casino/service"
)

// GameHandler exposes the four games and outcome verification.
type GameHandler struct {
	betting service.BettingService
}

// NewGameHandler creates a new game handler
func NewGameHandler(betting service.BettingService) *GameHandler {
	return &GameHandler{betting: betting}
}

type coinflipRequest struct {
	Wager    int64  `json:"wager"`
	Choice   string `json:"choice" binding:"required"`
	Freeroll bool   `json:"freeroll"`
}

type diceRequest struct {
	Wager     int64  `json:"wager"`
	Target    int64  `json:"target" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Freeroll  bool   `json:"freeroll"`
}

type blackjackRequest struct {
	Wager    int64 `json:"wager"`
	Freeroll bool  `json:"freeroll"`
}

type rouletteRequest struct {
	Wager    int64  `json:"wager"`
	BetType  string `json:"betType" binding:"required"`
	Number   int    `json:"number"`
	Freeroll bool   `json:"freeroll"`
}

// Coinflip plays one coin flip for the authenticated actor.
func (h *GameHandler) Coinflip(c *gin.Context) {
	var req coinflipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.placeBet(c, &service.BetRequest{
		GameType: models.GameCoinflip,
		Wager:    req.Wager,
		Freeroll: req.Freeroll,
		Choice:   engine.CoinSide(req.Choice),
	})
}

// Dice plays one dice roll for the authenticated actor.
func (h *GameHandler) Dice(c *gin.Context) {
	var req diceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.placeBet(c, &service.BetRequest{
		GameType:  models.GameDice,
		Wager:     req.Wager,
		Freeroll:  req.Freeroll,
		Target:    req.Target,
		Direction: engine.Direction(req.Direction),
	})
}

// Blackjack deals one blackjack hand for the authenticated actor.
func (h *GameHandler) Blackjack(c *gin.Context) {
	var req blackjackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.placeBet(c, &service.BetRequest{
		GameType: models.GameBlackjack,
		Wager:    req.Wager,
		Freeroll: req.Freeroll,
	})
}

// Roulette plays one roulette spin for the authenticated actor.
func (h *GameHandler) Roulette(c *gin.Context) {
	var req rouletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.placeBet(c, &service.BetRequest{
		GameType: models.GameRoulette,
		Wager:    req.Wager,
		Freeroll: req.Freeroll,
		BetType:  engine.RouletteBetType(req.BetType),
		Number:   req.Number,
	})
}

func (h *GameHandler) placeBet(c *gin.Context, req *service.BetRequest) {
	actor := actorFrom(c)

	result, err := h.betting.PlaceBet(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Verify replays a settled bet from its revealed seed.
func (h *GameHandler) Verify(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	result, err := h.betting.VerifyBet(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var gameInfo = map[models.GameType]gin.H{
	models.GameCoinflip: {
		"description": "Pick heads or tails. A correct call pays 1.96x.",
		"houseEdge":   0.02,
		"fields":      gin.H{"wager": "cents", "choice": "heads|tails"},
	},
	models.GameDice: {
		"description": "Roll 1-100. Win if the roll lands over or under your target; the multiplier scales with the odds.",
		"houseEdge":   0.01,
		"fields":      gin.H{"wager": "cents", "target": "2-98", "direction": "over|under"},
	},
	models.GameBlackjack: {
		"description": "One dealt hand, no hits or splits. Wins pay even money, naturals pay 3:2, pushes return the stake.",
		"houseEdge":   0.005,
		"fields":      gin.H{"wager": "cents"},
	},
	models.GameRoulette: {
		"description": "European single-zero wheel. Straight pays 35:1, dozens 2:1, even-money bets 1:1.",
		"houseEdge":   0.027,
		"fields":      gin.H{"wager": "cents", "betType": "straight|red|black|even|odd|low|high|dozen1|dozen2|dozen3", "number": "0-36, straight only"},
	},
}

// Info describes one game's odds and request shape.
func (h *GameHandler) Info(c *gin.Context) {
	gameType := models.GameType(c.Param("game"))
	info, ok := gameInfo[gameType]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": gameType, "info": info})
}

// Limits reports the betting bounds so clients can validate before sending.
func (h *GameHandler) Limits(c *gin.Context) {
	cfg := config.Get()
	c.JSON(http.StatusOK, gin.H{
		"minBet":        cfg.MinBet,
		"maxBet":        cfg.MaxBet,
		"freerollCents": cfg.FreerollCents,
		"games":         []models.GameType{models.GameCoinflip, models.GameDice, models.GameBlackjack, models.GameRoulette},
	})
}
