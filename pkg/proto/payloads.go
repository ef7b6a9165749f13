package proto

import (
	"ctchen222/Block-Battle/internal/game"
	"encoding/json"
)

// RoomDataPayload is shared by room_data, settings_changed and game_reset.
type RoomDataPayload struct {
	RoomData game.RoomData `json:"roomData"`
}

// SessionIDPayload is shared by authenticated and player_left.
type SessionIDPayload struct {
	SessionID game.SessionID `json:"sessionId" validate:"required"`
}

type PlayerDataPayload struct {
	PlayerData game.PlayerData `json:"playerData"`
}

// PlayerInfoPayload is shared by player_banned, player_unbanned and host_changed.
type PlayerInfoPayload struct {
	PlayerInfo game.PlayerInfo `json:"playerInfo"`
}

type RoundStartPayload struct {
	StartsAt Number        `json:"startsAt"`
	RoomData game.RoomData `json:"roomData"`
}

type RequestMovePayload struct {
	GameState game.GameState    `json:"gameState"`
	Players   []game.PlayerData `json:"players" validate:"dive"`
}

func (p RequestMovePayload) MarshalJSON() ([]byte, error) {
	type alias RequestMovePayload
	if p.Players == nil {
		p.Players = []game.PlayerData{}
	}
	return json.Marshal(alias(p))
}

type PlayerActionPayload struct {
	SessionID game.SessionID   `json:"sessionId" validate:"required"`
	Commands  []game.Command   `json:"commands" validate:"dive,command"`
	GameState game.GameState   `json:"gameState"`
	Events    []game.GameEvent `json:"events" validate:"dive"`
}

func (p PlayerActionPayload) MarshalJSON() ([]byte, error) {
	type alias PlayerActionPayload
	if p.Commands == nil {
		p.Commands = []game.Command{}
	}
	if p.Events == nil {
		p.Events = []game.GameEvent{}
	}
	return json.Marshal(alias(p))
}

type PlayerDamageReceivedPayload struct {
	SessionID game.SessionID `json:"sessionId" validate:"required"`
	Damage    Number         `json:"damage"`
	GameState game.GameState `json:"gameState"`
}

// EndPayload is shared by round_over and game_over.
type EndPayload struct {
	WinnerID   game.SessionID  `json:"winnerId" validate:"required"`
	WinnerInfo game.PlayerInfo `json:"winnerInfo"`
	RoomData   game.RoomData   `json:"roomData"`
}
