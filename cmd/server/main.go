package main

import (
	"context"
	"ctchen222/Block-Battle/internal/config"
	"ctchen222/Block-Battle/internal/db"
	"ctchen222/Block-Battle/internal/events"
	"ctchen222/Block-Battle/internal/hub"
	"ctchen222/Block-Battle/internal/logger"
	"ctchen222/Block-Battle/internal/repository"
	"ctchen222/Block-Battle/internal/room"
	"ctchen222/Block-Battle/internal/server"
	"ctchen222/Block-Battle/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.ServerID == "" {
		cfg.ServerID = uuid.New().String()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.InitOtel(ctx, "block-battle-gateway", cfg.OtelEndpoint)
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
	gin.SetMode(gin.ReleaseMode)

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Fatalf("failed to create metrics: %v", err)
	}

	// Initialize Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	sessions := repository.NewSessionRepository(rdb)
	bus := events.NewBus(rdb)

	h := hub.NewHub(cfg.ServerID, bus, sessions, metrics, room.Options{
		HeartbeatInterval: cfg.HeartbeatInterval,
		ReconnectGrace:    cfg.ReconnectGrace,
	})
	hubDone := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(hubDone)
	}()

	srv := server.NewServer(h, sessions)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: otelhttp.NewHandler(srv.Engine(), "gateway"),
	}

	go func() {
		slog.Info("http server started", "addr", cfg.ListenAddr, "server.id", cfg.ServerID)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	<-hubDone

	slog.Info("Server exiting")
}
