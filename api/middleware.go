package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"casino/models"
	"casino/service"
)

const actorKey = "actor"

// actorFrom returns the authenticated actor set by the auth middleware.
func actorFrom(c *gin.Context) *models.Actor {
	return c.MustGet(actorKey).(*models.Actor)
}

// PlayerAuth authenticates a player session token from the Authorization
// header and attaches the player actor to the request.
func PlayerAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(actorKey, &models.Actor{
			Type:    models.ActorPlayer,
			ID:      claims.PlayerID,
			Address: claims.Address,
		})
		c.Next()
	}
}

// AgentAuth authenticates an agent's x-api-key header and attaches the agent
// actor to the request.
func AgentAuth(accounts service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header required"})
			c.Abort()
			return
		}

		agent, err := accounts.AuthenticateAgent(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown or inactive api key"})
			c.Abort()
			return
		}

		actor := agent.Actor()
		c.Set(actorKey, &actor)
		c.Next()
	}
}

// RateLimiter counts actions per actor in a fixed window.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, actorID, action string, limit int, window time.Duration) (bool, error)
}

// RateLimit caps an action per authenticated actor. A nil or failing
// limiter does not block requests.
func RateLimit(limiter RateLimiter, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		actor := actorFrom(c)
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), actor.ID.String(), action, limit, window)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed")
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
