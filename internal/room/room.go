package room

import (
	"context"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/internal/repository"
	"ctchen222/Block-Battle/internal/telemetry"
	"ctchen222/Block-Battle/pkg/proto"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
)

const (
	defaultHeartbeatInterval = 10 * time.Second
	defaultReconnectGrace    = 60 * time.Second
)

var tracer = otel.Tracer("room")

// EventBus is the pub/sub surface a room relays through.
//
//go:generate mockgen -destination=mock_bus_test.go -package=room . EventBus
type EventBus interface {
	ListenEvents(ctx context.Context, roomID string, handle func(context.Context, proto.ServerEvent)) error
	PublishAction(ctx context.Context, roomID string, sessionID game.SessionID, action proto.ActionPayload) error
}

// Options tunes the room's timers. Zero values select the defaults.
type Options struct {
	HeartbeatInterval time.Duration
	ReconnectGrace    time.Duration
}

// Room relays the events of one room id to the players connected to this
// server, and their actions back to the bus.
type Room struct {
	ID         string
	bus        EventBus
	sessions   repository.SessionRepository
	metrics    *telemetry.Metrics
	Players    []*player.Player
	mu         sync.Mutex
	incoming   chan *types.PlayerMessage
	unregister chan *player.Player

	heartbeatInterval time.Duration
	reconnectGrace    time.Duration

	Done      chan struct{}
	closeOnce sync.Once
	closed    bool
	cancel    context.CancelFunc
}

// NewRoom creates a room relay.
func NewRoom(id string, bus EventBus, sessions repository.SessionRepository, metrics *telemetry.Metrics, opts Options) *Room {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = defaultHeartbeatInterval
	}
	if opts.ReconnectGrace <= 0 {
		opts.ReconnectGrace = defaultReconnectGrace
	}
	return &Room{
		ID:                id,
		bus:               bus,
		sessions:          sessions,
		metrics:           metrics,
		Players:           make([]*player.Player, 0, 4),
		incoming:          make(chan *types.PlayerMessage, 32),
		unregister:        make(chan *player.Player),
		heartbeatInterval: opts.HeartbeatInterval,
		reconnectGrace:    opts.ReconnectGrace,
		Done:              make(chan struct{}),
	}
}

// Start launches the bus listener and the run loop, then forwards players
// leaving the room to unregisterPlayer until the room is closed. Read pumps
// are started per player by the caller.
func (r *Room) Start(ctx context.Context, unregisterPlayer chan<- *player.Player) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		return
	}
	r.cancel = cancel
	r.mu.Unlock()

	go r.listen(ctx)
	go r.run(ctx)

	for {
		select {
		case p := <-r.unregister:
			select {
			case unregisterPlayer <- p:
			case <-r.Done:
				return
			}
		case <-r.Done:
			return
		}
	}
}

// Close stops the room and closes the connections of players still seated.
// It is safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		if r.cancel != nil {
			r.cancel()
		}
		players := append([]*player.Player(nil), r.Players...)
		r.mu.Unlock()
		close(r.Done)

		for _, p := range players {
			if p.Conn != nil {
				p.Conn.Close()
			}
		}
	})
}

// listen relays bus events to local players until the room is closed.
func (r *Room) listen(ctx context.Context) {
	err := r.bus.ListenEvents(ctx, r.ID, r.Broadcast)
	if err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "Room event subscription ended", "room.id", r.ID, "error", err)
	}
}

// run is the main loop for the room.
func (r *Room) run(ctx context.Context) {
	pingTicker := time.NewTicker(r.heartbeatInterval)
	cleanupTicker := time.NewTicker(r.reconnectGrace)

	defer func() {
		pingTicker.Stop()
		cleanupTicker.Stop()
	}()

	for {
		select {
		case <-r.Done:
			return

		case msg := <-r.incoming:
			r.HandleMessage(ctx, msg.Player, msg.Message)

		case <-pingTicker.C:
			r.ping(ctx)

		case <-cleanupTicker.C:
			for _, p := range r.expiredPlayers(time.Now()) {
				slog.InfoContext(ctx, "Player exceeded reconnection grace period. Removing from room.", "session.id", p.SessionID, "room.id", r.ID)
				select {
				case r.unregister <- p:
				case <-r.Done:
					return
				}
			}
		}
	}
}
