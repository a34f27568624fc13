package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"casino/events"
	"casino/models"
)

type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

// GetOrCreatePlayer resolves a wallet address to its player account,
// creating the account on first contact.
func (s *accountService) GetOrCreatePlayer(ctx context.Context, address string) (*models.Player, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, NewValidationError("address", "wallet address is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin player lookup", Err: err}
	}
	defer uow.Rollback()

	existing, err := uow.PlayerRepository().GetByAddress(ctx, address)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup player", Err: err}
	}

	player, err := uow.PlayerRepository().GetOrCreate(ctx, address)
	if err != nil {
		return nil, &PersistenceError{Op: "create player", Err: err}
	}

	if existing == nil {
		uow.EventBus().Publish(events.AccountCreatedEvent{
			ActorType: models.ActorPlayer,
			ActorID:   player.ID,
			Address:   player.Address,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, &PersistenceError{Op: "commit player lookup", Err: err}
	}

	if existing == nil {
		log.WithFields(log.Fields{
			"playerId": player.ID,
			"address":  player.Address,
		}).Info("Created player account")
	}

	return player, nil
}

// RegisterAgent creates a new agent with a fresh API key and a generated
// deposit wallet. The API key is only returned here; it is stored and
// matched verbatim afterwards.
func (s *accountService) RegisterAgent(ctx context.Context, name *string, withdrawAddress *string) (*models.Agent, error) {
	apiKey, err := newAgentKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}
	walletAddress, err := newDepositAddress()
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet address: %w", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin agent registration", Err: err}
	}
	defer uow.Rollback()

	agent, err := uow.AgentRepository().Create(ctx, name, apiKey, walletAddress, withdrawAddress)
	if err != nil {
		return nil, &PersistenceError{Op: "create agent", Err: err}
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		ActorType: models.ActorAgent,
		ActorID:   agent.ID,
		Address:   agent.WalletAddress,
	})

	if err := uow.Commit(); err != nil {
		return nil, &PersistenceError{Op: "commit agent registration", Err: err}
	}

	log.WithFields(log.Fields{
		"agentId": agent.ID,
		"wallet":  agent.WalletAddress,
	}).Info("Registered agent account")

	return agent, nil
}

// AuthenticateAgent resolves an API key to an active agent.
func (s *accountService) AuthenticateAgent(ctx context.Context, apiKey string) (*models.Agent, error) {
	if apiKey == "" {
		return nil, NewValidationError("apiKey", "api key is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin agent auth", Err: err}
	}
	defer uow.Rollback()

	agent, err := uow.AgentRepository().GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup agent", Err: err}
	}
	if agent == nil || !agent.IsActive {
		return nil, NewValidationError("apiKey", "unknown or inactive api key")
	}
	return agent, nil
}

// GetAgent retrieves an agent by ID.
func (s *accountService) GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, &PersistenceError{Op: "begin agent lookup", Err: err}
	}
	defer uow.Rollback()

	agent, err := uow.AgentRepository().GetByID(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup agent", Err: err}
	}
	if agent == nil {
		return nil, NewValidationError("agentId", "no agent with id %s", id)
	}
	return agent, nil
}

// newAgentKey issues an opaque bearer credential with a recognizable prefix.
func newAgentKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "ck_agent_" + hex.EncodeToString(buf), nil
}

// newDepositAddress generates the agent's unique deposit identifier. The
// treasury watches these addresses for inbound transfers.
func newDepositAddress() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(buf), nil
}
