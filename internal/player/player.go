package player

import (
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/pkg/proto"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// PlayerStatus is the connection state of a player.
type PlayerStatus string

const (
	StatusConnected    PlayerStatus = "connected"
	StatusDisconnected PlayerStatus = "disconnected"
)

// MaxDocumentSize bounds a single document read from a client.
const MaxDocumentSize = 1 << 20

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	SetReadLimit(limit int64)
	Close() error
}

// Player represents a connected client in a room.
type Player struct {
	SessionID game.SessionID
	Username  string
	Conn      Connection
	Status    PlayerStatus
	IsBot     bool
	LastSeen  time.Time

	writeMu sync.Mutex
}

// NewPlayer creates a connected player.
func NewPlayer(id game.SessionID, conn Connection) *Player {
	return &Player{
		SessionID: id,
		Conn:      conn,
		Status:    StatusConnected,
		LastSeen:  time.Now(),
	}
}

// Send encodes ev and writes it as a single text message.
func (p *Player) Send(ev proto.ServerEvent) error {
	data, err := proto.Encode(ev)
	if err != nil {
		return err
	}
	return p.Write(websocket.TextMessage, data)
}

// Write writes one message. Connections allow a single concurrent writer, so
// all writes to a player go through here.
func (p *Player) Write(messageType int, data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteMessage(messageType, data)
}
