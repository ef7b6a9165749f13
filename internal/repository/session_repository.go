package repository

import (
	"context"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/player"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.session")

// sessionTTL bounds how long presence for an idle session is kept.
const sessionTTL = 24 * time.Hour

const (
	fieldRoomID           = "room_id"
	fieldServerID         = "server_id"
	fieldConnectionStatus = "connection_status"
)

// SessionRepository defines the interface for session presence operations.
type SessionRepository interface {
	FindForReconnection(ctx context.Context, id game.SessionID) (roomID string, status player.PlayerStatus, err error)
	UpdateConnectionStatus(ctx context.Context, id game.SessionID, status player.PlayerStatus) error
	Join(ctx context.Context, id game.SessionID, roomID, serverID string) error
	Remove(ctx context.Context, id game.SessionID) error
}

type redisSessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new Redis-based SessionRepository.
func NewSessionRepository(rdb *redis.Client) SessionRepository {
	return &redisSessionRepository{
		rdb: rdb,
	}
}

func sessionKey(id game.SessionID) string {
	return fmt.Sprintf("session:%s", id)
}

// FindForReconnection returns the room a session was last in. An unknown
// session yields an empty room id and no error.
func (r *redisSessionRepository) FindForReconnection(ctx context.Context, id game.SessionID) (string, player.PlayerStatus, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.FindForReconnection")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return "", "", fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return data[fieldRoomID], player.PlayerStatus(data[fieldConnectionStatus]), nil
}

// UpdateConnectionStatus updates only the connection status of a session.
func (r *redisSessionRepository) UpdateConnectionStatus(ctx context.Context, id game.SessionID, status player.PlayerStatus) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.UpdateConnectionStatus")
	defer span.End()

	key := sessionKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, fieldConnectionStatus, string(status))
	pipe.Expire(ctx, key, sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Join records that a session is connected to roomID through serverID.
func (r *redisSessionRepository) Join(ctx context.Context, id game.SessionID, roomID, serverID string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Join")
	defer span.End()

	key := sessionKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, fieldRoomID, roomID)
	pipe.HSet(ctx, key, fieldServerID, serverID)
	pipe.HSet(ctx, key, fieldConnectionStatus, string(player.StatusConnected))
	pipe.Expire(ctx, key, sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Remove forgets a session, typically once its reconnection grace period is over.
func (r *redisSessionRepository) Remove(ctx context.Context, id game.SessionID) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Remove")
	defer span.End()

	return r.rdb.Del(ctx, sessionKey(id)).Err()
}
