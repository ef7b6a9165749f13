package room

import (
	"context"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/pkg/proto"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Broadcast encodes ev once and sends it to all connected players in the room.
func (r *Room) Broadcast(ctx context.Context, ev proto.ServerEvent) {
	ctx, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("event.type", string(ev.Type())),
	))
	defer span.End()

	data, err := proto.Encode(ev)
	if err != nil {
		slog.ErrorContext(ctx, "error encoding event", "event.type", ev.Type(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error encoding event")
		return
	}

	for _, p := range r.connectedPlayers() {
		if err := p.Write(websocket.TextMessage, data); err != nil {
			slog.ErrorContext(ctx, "error writing event to player", "session.id", p.SessionID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Error writing event to player")
		}
	}
	r.metrics.EventRelayed(ctx, string(ev.Type()))
}

// ReadPump pumps documents from the player's connection into the room's run loop.
func (r *Room) ReadPump(p *player.Player) {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("session.id", string(p.SessionID)),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	defer func() {
		p.Conn.Close()
		if !r.markDisconnected(p) {
			return
		}
		disconnectCtx, disconnectSpan := tracer.Start(ctx, "room.ReadPump.disconnectHandler", trace.WithAttributes(
			attribute.String("session.id", string(p.SessionID)),
			attribute.String("room.id", r.ID),
		))
		defer disconnectSpan.End()

		if err := r.sessions.UpdateConnectionStatus(disconnectCtx, p.SessionID, player.StatusDisconnected); err != nil {
			slog.ErrorContext(disconnectCtx, "Failed to set player status to disconnected", "session.id", p.SessionID, "error", err)
			disconnectSpan.RecordError(err)
			disconnectSpan.SetStatus(codes.Error, "Failed to set player status to disconnected")
		}
		slog.InfoContext(disconnectCtx, "Player disconnected.", "session.id", p.SessionID, "room.id", r.ID)
	}()

	p.Conn.SetReadLimit(player.MaxDocumentSize)
	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "Player connection error", "session.id", p.SessionID, "room.id", r.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Player connection error")
			return
		}
		select {
		case r.incoming <- &types.PlayerMessage{Player: p, Message: msg}:
		case <-r.Done:
			return
		}
	}
}

// ping sends a heartbeat to every connected player.
func (r *Room) ping(ctx context.Context) {
	for _, p := range r.connectedPlayers() {
		if err := p.Write(websocket.PingMessage, nil); err != nil {
			slog.WarnContext(ctx, "Failed to send ping to player, assuming disconnect", "session.id", p.SessionID, "error", err)
		}
	}
}
