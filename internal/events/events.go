package events

import (
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/pkg/proto"
	"encoding/json"
	"fmt"
)

// RoomChannel is the pub/sub channel the game engine publishes a room's
// server events on.
func RoomChannel(roomID string) string {
	return fmt.Sprintf("channel:room:%s", roomID)
}

// ActionsChannel is the pub/sub channel the relay publishes a room's player
// actions on.
func ActionsChannel(roomID string) string {
	return fmt.Sprintf("channel:room:%s:actions", roomID)
}

// InboundAction is the document published on ActionsChannel. Event holds the
// encoded action event exactly as the relay accepted it.
type InboundAction struct {
	SessionID game.SessionID  `json:"sessionId" validate:"required"`
	Event     json.RawMessage `json:"event" validate:"required"`
}

// Action is a decoded InboundAction.
type Action struct {
	SessionID game.SessionID
	Payload   proto.ActionPayload
}
