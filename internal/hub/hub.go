package hub

import (
	"context"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/internal/repository"
	"ctchen222/Block-Battle/internal/room"
	"ctchen222/Block-Battle/internal/telemetry"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// Hub owns the rooms served locally and the players attached to them.
type Hub struct {
	serverID    string
	bus         room.EventBus
	sessions    repository.SessionRepository
	metrics     *telemetry.Metrics
	roomOptions room.Options

	mu         sync.RWMutex
	localRooms map[string]*room.Room
	register   chan *types.RegistrationRequest
	unregister chan *player.Player
}

// NewHub creates a new hub.
func NewHub(serverID string, bus room.EventBus, sessions repository.SessionRepository, metrics *telemetry.Metrics, opts room.Options) *Hub {
	return &Hub{
		serverID:    serverID,
		bus:         bus,
		sessions:    sessions,
		metrics:     metrics,
		roomOptions: opts,
		localRooms:  make(map[string]*room.Room),
		register:    make(chan *types.RegistrationRequest),
		unregister:  make(chan *player.Player),
	}
}

// Run processes registrations until ctx is done, then closes every local room.
func (h *Hub) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Hub started", "server.id", h.serverID)
	defer h.closeAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case req := <-h.register:
			h.handleRegistration(ctx, req.Ctx, req)

		case p := <-h.unregister:
			h.handleUnregistration(ctx, p)
		}
	}
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Unregister returns the unregister channel.
func (h *Hub) Unregister() chan<- *player.Player {
	return h.unregister
}

// RoomCount reports how many rooms this server currently relays.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.localRooms)
}

// Room returns the local room with the given id.
func (h *Hub) Room(id string) (*room.Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.localRooms[id]
	return r, ok
}

func (h *Hub) closeAll(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, r := range h.localRooms {
		r.Close()
		delete(h.localRooms, id)
	}
	slog.InfoContext(ctx, "Hub stopped", "server.id", h.serverID)
}
