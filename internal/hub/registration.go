package hub

import (
	"context"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/internal/room"
	"ctchen222/Block-Battle/pkg/proto"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleRegistration confirms the session to the player and attaches it to
// its room, starting a room relay when this server has none yet. Work runs on
// runCtx, which outlives the HTTP request; reqCtx only links the request's trace.
func (h *Hub) handleRegistration(runCtx, reqCtx context.Context, req *types.RegistrationRequest) {
	p := req.Player
	opts := []trace.SpanStartOption{trace.WithAttributes(
		attribute.String("session.id", string(p.SessionID)),
		attribute.String("room.id", req.RoomID),
		attribute.String("player.username", p.Username),
		attribute.Bool("player.bot", p.IsBot),
	)}
	if reqCtx != nil {
		opts = append(opts, trace.WithLinks(trace.LinkFromContext(reqCtx)))
	}
	ctx, span := tracer.Start(runCtx, "hub.handleRegistration", opts...)
	defer span.End()

	if err := p.Send(proto.AuthenticatedEvent{Payload: proto.SessionIDPayload{SessionID: p.SessionID}}); err != nil {
		slog.ErrorContext(ctx, "Could not confirm session to player", "session.id", p.SessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not send authenticated event")
		p.Conn.Close()
		return
	}

	if err := h.sessions.Join(ctx, p.SessionID, req.RoomID, h.serverID); err != nil {
		slog.ErrorContext(ctx, "Failed to record session presence", "session.id", p.SessionID, "room.id", req.RoomID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to record session presence")
	}

	h.mu.Lock()
	existingRoom, ok := h.localRooms[req.RoomID]
	if !ok {
		existingRoom = room.NewRoom(req.RoomID, h.bus, h.sessions, h.metrics, h.roomOptions)
		h.localRooms[req.RoomID] = existingRoom
	}
	h.mu.Unlock()

	existingRoom.AddPlayer(p)
	go existingRoom.ReadPump(p)
	if ok {
		slog.InfoContext(ctx, "Player added to existing local room", "session.id", p.SessionID, "room.id", req.RoomID)
		return
	}

	go existingRoom.Start(runCtx, h.unregister)
	slog.InfoContext(ctx, "Local room relay created", "session.id", p.SessionID, "room.id", req.RoomID)
}

// handleUnregistration removes p from its room and closes the room once empty.
func (h *Hub) handleUnregistration(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "hub.handleUnregistration", trace.WithAttributes(
		attribute.String("session.id", string(p.SessionID)),
	))
	defer span.End()

	removed := false
	h.mu.Lock()
	for roomID, r := range h.localRooms {
		var remaining int
		removed, remaining = r.RemovePlayer(p)
		if !removed {
			continue
		}
		slog.InfoContext(ctx, "Player removed from room", "session.id", p.SessionID, "room.id", roomID)
		if remaining == 0 {
			r.Close()
			delete(h.localRooms, roomID)
			slog.InfoContext(ctx, "Room closed due to no players", "room.id", roomID)
		}
		break
	}
	h.mu.Unlock()

	if !removed {
		slog.InfoContext(ctx, "Ignoring unregistration of a player no longer seated", "session.id", p.SessionID)
		return
	}
	if err := h.sessions.Remove(ctx, p.SessionID); err != nil {
		slog.ErrorContext(ctx, "Failed to remove session presence", "session.id", p.SessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to remove session presence")
	}
}
