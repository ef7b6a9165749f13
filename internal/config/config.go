package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig configures the relay gateway.
type ServerConfig struct {
	ListenAddr        string        `env:"BLOCK_BATTLE_LISTEN_ADDR"         envDefault:":8080"`
	RedisAddr         string        `env:"REDIS_CONNSTRING"                 envDefault:"localhost:6379"`
	ServerID          string        `env:"BLOCK_BATTLE_SERVER_ID"`
	OtelEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"      envDefault:"otel-collector:4317"`
	TelemetryEnabled  bool          `env:"BLOCK_BATTLE_TELEMETRY"           envDefault:"true"`
	LogLevel          slog.Level    `env:"BLOCK_BATTLE_LOG_LEVEL"           envDefault:"debug"`
	HeartbeatInterval time.Duration `env:"BLOCK_BATTLE_HEARTBEAT_INTERVAL"  envDefault:"10s"`
	ReconnectGrace    time.Duration `env:"BLOCK_BATTLE_RECONNECT_GRACE"     envDefault:"60s"`
}

// BotConfig configures the bot client.
type BotConfig struct {
	GatewayURL   string        `env:"BLOCK_BATTLE_GATEWAY_URL" envDefault:"ws://localhost:8080/ws"`
	RoomID       string        `env:"BLOCK_BATTLE_ROOM_ID,required"`
	SessionID    string        `env:"BLOCK_BATTLE_SESSION_ID"`
	Username     string        `env:"BLOCK_BATTLE_BOT_NAME"    envDefault:"bot"`
	Difficulty   string        `env:"BLOCK_BATTLE_BOT_DIFFICULTY" envDefault:"medium"`
	ThinkDelay   time.Duration `env:"BLOCK_BATTLE_THINK_DELAY" envDefault:"250ms"`
	Seed         uint64        `env:"BLOCK_BATTLE_BOT_SEED"`
	LogLevel     slog.Level    `env:"BLOCK_BATTLE_LOG_LEVEL"   envDefault:"info"`
	OtelEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"otel-collector:4317"`
	Telemetry    bool          `env:"BLOCK_BATTLE_TELEMETRY"   envDefault:"false"`
}

// LoadServer reads ServerConfig from the environment.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadBot reads BotConfig from the environment.
func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	if err := env.Parse(&cfg); err != nil {
		return BotConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
