package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casino/service"
)

// StatsHandler exposes the public leaderboard and house statistics.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Leaderboard returns the top actors ranked by total won.
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.stats.GetLeaderboard(c.Request.Context(), limitParam(c, 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// CasinoStats returns house-wide aggregates.
func (h *StatsHandler) CasinoStats(c *gin.Context) {
	stats, err := h.stats.GetCasinoStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecentWins returns the most recent winning bets.
func (h *StatsHandler) RecentWins(c *gin.Context) {
	wins, err := h.stats.GetRecentWins(c.Request.Context(), limitParam(c, 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wins": wins})
}

// ActorGames returns the authenticated actor's bet history.
func (h *StatsHandler) ActorGames(c *gin.Context) {
	actor := actorFrom(c)

	games, err := h.stats.GetActorGames(c.Request.Context(), actor.Type, actor.ID, limitParam(c, 25))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// ActorBalanceHistory returns the authenticated actor's balance changes.
func (h *StatsHandler) ActorBalanceHistory(c *gin.Context) {
	actor := actorFrom(c)

	history, err := h.stats.GetActorBalanceHistory(c.Request.Context(), actor.Type, actor.ID, limitParam(c, 25))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func limitParam(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return limit
}
