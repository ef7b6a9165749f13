package main

import (
	"context"
	"ctchen222/Block-Battle/internal/bot"
	"ctchen222/Block-Battle/internal/config"
	"ctchen222/Block-Battle/internal/logger"
	"ctchen222/Block-Battle/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.InitOtel(ctx, "block-battle-bot", cfg.OtelEndpoint)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}
	logger.Init(cfg.LogLevel)

	if cfg.SessionID == "" {
		cfg.SessionID = "bot-" + uuid.New().String()[:8]
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(uuid.New().ID())
	}

	gatewayURL, err := url.Parse(cfg.GatewayURL)
	if err != nil {
		log.Fatalf("invalid gateway url %q: %v", cfg.GatewayURL, err)
	}
	q := gatewayURL.Query()
	q.Set("roomId", cfg.RoomID)
	q.Set("sessionId", cfg.SessionID)
	q.Set("username", cfg.Username)
	q.Set("isBot", "true")
	gatewayURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, gatewayURL.String(), nil)
	if err != nil {
		log.Fatalf("failed to dial gateway: %v", err)
	}

	slog.InfoContext(ctx, "Bot connected", "room.id", cfg.RoomID, "session.id", cfg.SessionID, "bot.name", cfg.Username, "bot.difficulty", cfg.Difficulty)
	client := bot.NewClient(conn, bot.NewStrategy(cfg.Difficulty, cfg.Seed), cfg.ThinkDelay)
	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "Bot stopped", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "Bot finished")
}
