package bot

import (
	"context"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/pkg/proto"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("bot")

// Client plays one seat over a gateway connection.
type Client struct {
	conn       player.Connection
	strategy   Strategy
	thinkDelay time.Duration
	sessionID  game.SessionID
}

// NewClient creates a bot client on conn.
func NewClient(conn player.Connection, strategy Strategy, thinkDelay time.Duration) *Client {
	return &Client{
		conn:       conn,
		strategy:   strategy,
		thinkDelay: thinkDelay,
	}
}

// SessionID returns the session the gateway assigned, once authenticated.
func (c *Client) SessionID() game.SessionID {
	return c.sessionID
}

// Run reads events until the game is over, the connection fails or ctx is
// done. The connection is closed when Run returns.
func (c *Client) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-stop:
		}
	}()
	defer c.conn.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}

		done, err := c.handle(ctx, data)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle reacts to one document and reports whether the game is over.
func (c *Client) handle(ctx context.Context, data []byte) (bool, error) {
	ev, err := proto.Decode(data)
	if err != nil {
		slog.WarnContext(ctx, "Ignoring undecodable event", "error", err)
		return false, nil
	}

	switch e := ev.(type) {
	case proto.AuthenticatedEvent:
		c.sessionID = e.Payload.SessionID
		slog.InfoContext(ctx, "Bot authenticated", "session.id", c.sessionID)

	case proto.RequestMoveEvent:
		return false, c.move(ctx, e.Payload)

	case proto.ErrorEvent:
		slog.WarnContext(ctx, "Gateway reported an error", "session.id", c.sessionID, "error", e.Payload)

	case proto.RoundOverEvent:
		slog.InfoContext(ctx, "Round over", "winner.id", e.Payload.WinnerID, "won", e.Payload.WinnerID == c.sessionID)

	case proto.GameOverEvent:
		slog.InfoContext(ctx, "Game over", "winner.id", e.Payload.WinnerID, "won", e.Payload.WinnerID == c.sessionID)
		return true, nil
	}
	return false, nil
}

func (c *Client) move(ctx context.Context, req proto.RequestMovePayload) error {
	ctx, span := tracer.Start(ctx, "bot.move", trace.WithAttributes(
		attribute.String("session.id", string(c.sessionID)),
	))
	defer span.End()

	if c.thinkDelay > 0 {
		select {
		case <-time.After(c.thinkDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	action := c.strategy.NextMove(req)
	span.SetAttributes(attribute.Int("action.commands", len(action.Commands)))

	data, err := proto.Encode(action.Event())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode action")
		return err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send action")
		return fmt.Errorf("send action: %w", err)
	}
	return nil
}
