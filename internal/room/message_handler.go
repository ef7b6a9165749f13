package room

import (
	"context"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/pkg/proto"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Rejection reasons recorded on the rejected-events counter.
const (
	reasonMalformed     = "malformed"
	reasonSchema        = "schema_mismatch"
	reasonNotAllowed    = "not_allowed"
	reasonPublishFailed = "publish_failed"
)

// HandleMessage handles a document sent by a player. Clients may only send
// action events; anything else is answered with an error event.
func (r *Room) HandleMessage(ctx context.Context, p *player.Player, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("session.id", string(p.SessionID)),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if !r.isConnected(p) {
		slog.WarnContext(ctx, "ignoring message from disconnected player", "session.id", p.SessionID)
		span.SetStatus(codes.Error, "Message from disconnected player")
		return
	}

	ev, err := proto.Decode(rawMessage)
	if err != nil {
		reason := reasonSchema
		if errors.Is(err, proto.ErrMalformedDocument) {
			reason = reasonMalformed
		}
		slog.WarnContext(ctx, "invalid document from player", "session.id", p.SessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid document")
		r.reject(ctx, p, reason, err.Error())
		return
	}
	span.SetAttributes(attribute.String("event.type", string(ev.Type())))

	action, ok := ev.(proto.ActionEvent)
	if !ok {
		slog.WarnContext(ctx, "player sent a server-only event", "session.id", p.SessionID, "event.type", ev.Type())
		span.SetStatus(codes.Error, "Event not allowed from client")
		r.reject(ctx, p, reasonNotAllowed, fmt.Sprintf("event type %q cannot be sent by clients", ev.Type()))
		return
	}

	if err := r.bus.PublishAction(ctx, r.ID, p.SessionID, action.Payload); err != nil {
		slog.ErrorContext(ctx, "failed to forward action", "session.id", p.SessionID, "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to forward action")
		r.reject(ctx, p, reasonPublishFailed, "action could not be delivered")
		return
	}
	r.metrics.ActionForwarded(ctx)
}

// reject counts a rejected document and tells the sender why.
func (r *Room) reject(ctx context.Context, p *player.Player, reason, message string) {
	r.metrics.EventRejected(ctx, reason)
	if err := p.Send(proto.ErrorEvent{Payload: message}); err != nil {
		slog.ErrorContext(ctx, "error sending error event to player", "session.id", p.SessionID, "error", err)
	}
}
