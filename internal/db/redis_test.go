package db

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	client, err := NewRedisClient(ctx, "127.0.0.1:1")
	if err == nil {
		client.Close()
		t.Fatal("Expected an error for an unreachable server")
	}
}

func TestNewRedisClientURLUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if _, err := NewRedisClient(ctx, "redis://127.0.0.1:1/0"); err == nil {
		t.Fatal("Expected an error for an unreachable server")
	}
}
