package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"casino/config"
	"casino/service"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Games    *GameHandler
	Accounts *AccountHandler
	Stats    *StatsHandler
	Feed     *LiveFeed
	Tokens   *service.TokenService
	Auth     service.AccountService
	Limiter  RateLimiter
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Public surface: auth, registration, stats, verification, live feed.
	router.POST("/auth/wallet", h.Accounts.WalletAuth)
	router.POST("/agents/register", h.Accounts.RegisterAgent)

	router.GET("/stats", h.Stats.CasinoStats)
	router.GET("/leaderboard", h.Stats.Leaderboard)
	router.GET("/wins", h.Stats.RecentWins)
	router.GET("/limits", h.Games.Limits)
	router.GET("/games/:game/info", h.Games.Info)
	router.GET("/verify/:id", h.Games.Verify)
	router.GET("/ws", h.Feed.Handle)

	playerGames := router.Group("/games")
	playerGames.Use(PlayerAuth(h.Tokens))
	playerGames.Use(RateLimit(h.Limiter, "bet", 30, time.Minute))
	mountGameRoutes(playerGames, h.Games)

	player := router.Group("/me")
	player.Use(PlayerAuth(h.Tokens))
	{
		player.GET("", h.Accounts.Me)
		player.GET("/games", h.Stats.ActorGames)
		player.GET("/history", h.Stats.ActorBalanceHistory)
		player.POST("/deposits", h.Accounts.Deposit)
	}

	agent := router.Group("/agents")
	agent.Use(AgentAuth(h.Auth))
	{
		agent.GET("/me", h.Accounts.AgentMe)
		agent.GET("/games", h.Stats.ActorGames)
		agent.GET("/history", h.Stats.ActorBalanceHistory)
		agent.GET("/withdrawals", h.Accounts.Withdrawals)
		agent.POST("/claim", h.Accounts.Claim)

		agentGames := agent.Group("/games")
		agentGames.Use(RateLimit(h.Limiter, "agent-bet", 60, time.Minute))
		mountGameRoutes(agentGames, h.Games)
	}

	return router
}

func mountGameRoutes(group *gin.RouterGroup, games *GameHandler) {
	group.POST("/coinflip", games.Coinflip)
	group.POST("/dice", games.Dice)
	group.POST("/blackjack", games.Blackjack)
	group.POST("/roulette", games.Roulette)
}
