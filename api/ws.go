package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"casino/events"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// feedMessage is the wire frame pushed to live feed subscribers.
type feedMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// LiveFeed pushes settled bets to connected spectators. The feed is
// broadcast-only: clients may send PING frames but nothing else is read.
type LiveFeed struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	broadcast chan *feedMessage
}

// NewLiveFeed creates the feed hub and subscribes it to bet settlements.
func NewLiveFeed(bus *events.Bus) *LiveFeed {
	f := &LiveFeed{
		clients:   make(map[*websocket.Conn]struct{}),
		broadcast: make(chan *feedMessage, 100),
	}

	bus.Subscribe(events.EventTypeBetSettled, f.onBetSettled)
	go f.run()

	return f
}

func (f *LiveFeed) onBetSettled(_ context.Context, event events.Event) {
	settled, ok := event.(events.BetSettledEvent)
	if !ok {
		return
	}

	msg := &feedMessage{
		Type: "BET_SETTLED",
		Data: gin.H{
			"gameId":    settled.GameID,
			"actorType": settled.ActorType,
			"gameType":  settled.GameType,
			"wager":     settled.Wager,
			"outcome":   settled.Outcome,
			"payout":    settled.Payout,
			"profit":    settled.Profit,
			"freeroll":  settled.IsFreeroll,
			"settledAt": settled.SettledAt.Unix(),
		},
	}

	select {
	case f.broadcast <- msg:
	default:
		log.Warn("Live feed broadcast buffer full, dropping event")
	}
}

// Handle upgrades the request and streams the feed until the client hangs up.
func (f *LiveFeed) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade to WebSocket")
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
		conn.Close()
	}()

	for {
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("WebSocket read error")
			}
			return
		}

		if msg.Type == "PING" {
			conn.WriteJSON(feedMessage{
				Type: "PONG",
				Data: gin.H{"timestamp": time.Now().Unix()},
			})
		}
	}
}

func (f *LiveFeed) run() {
	for msg := range f.broadcast {
		f.mu.Lock()
		for conn := range f.clients {
			if err := conn.WriteJSON(msg); err != nil {
				delete(f.clients, conn)
				conn.Close()
			}
		}
		f.mu.Unlock()
	}
}
