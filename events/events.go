package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"casino/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetSettled       EventType = "bet_settled"
	EventTypeBalanceChange    EventType = "balance_change"
	EventTypeAccountCreated   EventType = "account_created"
	EventTypeFreerollConsumed EventType = "freeroll_consumed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetSettledEvent is published after a bet's ledger mutation commits. It
// feeds the live win feed and cache invalidation.
type BetSettledEvent struct {
	GameID     uuid.UUID
	ActorType  models.ActorType
	ActorID    uuid.UUID
	GameType   models.GameType
	Wager      int64
	Outcome    models.Outcome
	Payout     int64
	Profit     int64
	IsFreeroll bool
	SettledAt  time.Time
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	ActorType       models.ActorType
	ActorID         uuid.UUID
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a new player or agent account
type AccountCreatedEvent struct {
	ActorType models.ActorType
	ActorID   uuid.UUID
	Address   string
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// FreerollConsumedEvent records the one-time freeroll being spent
type FreerollConsumedEvent struct {
	AgentID uuid.UUID
	Won     bool
}

func (e FreerollConsumedEvent) Type() EventType {
	return EventTypeFreerollConsumed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the settlement path
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context.
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
