package types

import (
	"context"
	"ctchen222/Block-Battle/internal/player"
)

// RegistrationRequest represents a request to attach a player to a room.
type RegistrationRequest struct {
	Player *player.Player
	RoomID string
	Ctx    context.Context
}

// PlayerMessage is a raw document read from a player's connection.
type PlayerMessage struct {
	Player  *player.Player
	Message []byte
}
