package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino/config"
	"casino/models"
	"casino/service"
)

// AccountHandler exposes player auth and agent lifecycle endpoints.
type AccountHandler struct {
	accounts    service.AccountService
	deposits    service.DepositService
	withdrawals service.WithdrawalService
	tokens      *service.TokenService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	accounts service.AccountService,
	deposits service.DepositService,
	withdrawals service.WithdrawalService,
	tokens *service.TokenService,
) *AccountHandler {
	return &AccountHandler{
		accounts:    accounts,
		deposits:    deposits,
		withdrawals: withdrawals,
		tokens:      tokens,
	}
}

type walletAuthRequest struct {
	Address string `json:"address" binding:"required"`
}

// WalletAuth resolves a wallet address to a player account and issues a
// session token.
func (h *AccountHandler) WalletAuth(c *gin.Context) {
	var req walletAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.accounts.GetOrCreatePlayer(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(player.ID, player.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"player": playerView(player),
	})
}

// Me returns the authenticated player's account.
func (h *AccountHandler) Me(c *gin.Context) {
	actor := actorFrom(c)

	player, err := h.accounts.GetOrCreatePlayer(c.Request.Context(), actor.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playerView(player))
}

type depositRequest struct {
	TxHash string `json:"txHash" binding:"required"`
}

// Deposit credits a confirmed on-chain transfer to the player's balance.
func (h *AccountHandler) Deposit(c *gin.Context) {
	actor := actorFrom(c)

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deposit, err := h.deposits.CreditDeposit(c.Request.Context(), actor.ID, req.TxHash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"txHash": deposit.TxHash,
		"amount": deposit.Amount,
		"status": deposit.Status,
	})
}

type registerAgentRequest struct {
	Name            *string `json:"name"`
	WithdrawAddress *string `json:"withdrawAddress"`
}

// RegisterAgent creates an agent account. The API key in the response is
// shown exactly once.
func (h *AccountHandler) RegisterAgent(c *gin.Context) {
	var req registerAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.accounts.RegisterAgent(c.Request.Context(), req.Name, req.WithdrawAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"agentId":       agent.ID,
		"apiKey":        agent.APIKey,
		"walletAddress": agent.WalletAddress,
		"freerollCents": config.Get().FreerollCents,
	})
}

// AgentMe returns the authenticated agent's account.
func (h *AccountHandler) AgentMe(c *gin.Context) {
	actor := actorFrom(c)

	agent, err := h.accounts.GetAgent(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agentView(agent))
}

// Claim pays out the agent's full balance to its withdraw address.
func (h *AccountHandler) Claim(c *gin.Context) {
	actor := actorFrom(c)

	withdrawal, err := h.withdrawals.ClaimBalance(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"txHash": withdrawal.TxHash,
		"amount": withdrawal.Amount,
		"to":     withdrawal.ToAddress,
		"status": withdrawal.Status,
	})
}

// Withdrawals lists the authenticated agent's past claims.
func (h *AccountHandler) Withdrawals(c *gin.Context) {
	actor := actorFrom(c)

	withdrawals, err := h.withdrawals.ListWithdrawals(c.Request.Context(), actor.ID, 25)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}

func playerView(p *models.Player) gin.H {
	return gin.H{
		"id":           p.ID,
		"address":      p.Address,
		"displayName":  p.DisplayName,
		"balance":      p.Balance,
		"totalWagered": p.TotalWagered,
		"totalWon":     p.TotalWon,
		"gamesPlayed":  p.GamesPlayed,
		"biggestWin":   p.BiggestWin,
		"winStreak":    p.WinStreak,
		"bestStreak":   p.BestStreak,
	}
}

func agentView(a *models.Agent) gin.H {
	return gin.H{
		"id":            a.ID,
		"name":          a.Name,
		"walletAddress": a.WalletAddress,
		"balance":       a.Balance,
		"freerollUsed":  a.FreerollUsed,
		"freerollWon":   a.FreerollWon,
		"totalWagered":  a.TotalWagered,
		"totalWon":      a.TotalWon,
		"gamesPlayed":   a.GamesPlayed,
		"biggestWin":    a.BiggestWin,
		"bestStreak":    a.BestStreak,
	}
}
