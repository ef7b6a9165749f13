package events

import (
	"context"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/validator"
	"ctchen222/Block-Battle/pkg/proto"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("events")

// Bus moves encoded events between the relay and the game engine over Redis pub/sub.
type Bus struct {
	rdb *redis.Client
}

// NewBus creates a Bus on rdb.
func NewBus(rdb *redis.Client) *Bus {
	return &Bus{rdb: rdb}
}

// PublishEvent publishes ev to every relay serving roomID.
func (b *Bus) PublishEvent(ctx context.Context, roomID string, ev proto.ServerEvent) error {
	ctx, span := tracer.Start(ctx, "Bus.PublishEvent", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	data, err := proto.Encode(ev)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode event")
		return err
	}
	span.SetAttributes(attribute.String("event.type", string(ev.Type())))

	if err := b.rdb.Publish(ctx, RoomChannel(roomID), data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish event")
		return fmt.Errorf("failed to publish %s for room %s: %w", ev.Type(), roomID, err)
	}
	return nil
}

// PublishAction publishes an action sent by sessionID for the game engine.
func (b *Bus) PublishAction(ctx context.Context, roomID string, sessionID game.SessionID, action proto.ActionPayload) error {
	ctx, span := tracer.Start(ctx, "Bus.PublishAction", trace.WithAttributes(
		attribute.String("room.id", roomID),
		attribute.String("session.id", string(sessionID)),
		attribute.Int("action.commands", len(action.Commands)),
	))
	defer span.End()

	event, err := proto.Encode(action.Event())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode action")
		return err
	}
	data, err := json.Marshal(InboundAction{SessionID: sessionID, Event: event})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal inbound action")
		return fmt.Errorf("failed to marshal inbound action: %w", err)
	}

	if err := b.rdb.Publish(ctx, ActionsChannel(roomID), data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish action")
		return fmt.Errorf("failed to publish action for room %s: %w", roomID, err)
	}
	return nil
}

// SubscribeEvents subscribes to the server events of roomID. The subscription
// is active when SubscribeEvents returns.
func (b *Bus) SubscribeEvents(ctx context.Context, roomID string) (*Subscription[proto.ServerEvent], error) {
	return subscribe(ctx, b.rdb, RoomChannel(roomID), proto.Decode)
}

// SubscribeActions subscribes to the player actions of roomID.
func (b *Bus) SubscribeActions(ctx context.Context, roomID string) (*Subscription[Action], error) {
	return subscribe(ctx, b.rdb, ActionsChannel(roomID), decodeAction)
}

// ListenEvents subscribes to roomID and calls handle for every event until
// ctx is done.
func (b *Bus) ListenEvents(ctx context.Context, roomID string, handle func(context.Context, proto.ServerEvent)) error {
	sub, err := b.SubscribeEvents(ctx, roomID)
	if err != nil {
		return err
	}
	return sub.Run(ctx, handle)
}

// Subscription delivers decoded messages from one pub/sub channel.
type Subscription[T any] struct {
	pubsub  *redis.PubSub
	channel string
	decode  func([]byte) (T, error)
}

func subscribe[T any](ctx context.Context, rdb *redis.Client, channel string, decode func([]byte) (T, error)) (*Subscription[T], error) {
	pubsub := rdb.Subscribe(ctx, channel)
	// Wait for confirmation that subscription is created.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}
	slog.InfoContext(ctx, "Subscribed", "channel", channel)
	return &Subscription[T]{pubsub: pubsub, channel: channel, decode: decode}, nil
}

// Run calls handle for every message until ctx is done or the subscription is
// closed. Messages that fail to decode are logged and skipped. Run closes the
// subscription before returning.
func (s *Subscription[T]) Run(ctx context.Context, handle func(context.Context, T)) error {
	defer s.pubsub.Close()

	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			v, err := s.decode([]byte(msg.Payload))
			if err != nil {
				slog.WarnContext(ctx, "Dropping undecodable message", "channel", s.channel, "error", err)
				continue
			}
			handle(ctx, v)
		}
	}
}

// Close ends the subscription.
func (s *Subscription[T]) Close() error {
	return s.pubsub.Close()
}

func decodeAction(data []byte) (Action, error) {
	var in InboundAction
	if err := json.Unmarshal(data, &in); err != nil {
		return Action{}, fmt.Errorf("failed to unmarshal inbound action: %w", err)
	}
	if err := validator.GetValidator().Struct(in); err != nil {
		return Action{}, fmt.Errorf("invalid inbound action: %w", err)
	}

	ev, err := proto.Decode(in.Event)
	if err != nil {
		return Action{}, err
	}
	action, ok := ev.(proto.ActionEvent)
	if !ok {
		return Action{}, fmt.Errorf("expected %s event, got %s", proto.TypeAction, ev.Type())
	}
	return Action{SessionID: in.SessionID, Payload: action.Payload}, nil
}
