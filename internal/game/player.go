package game

// SessionID identifies one connected client.
type SessionID string

// PlayerInfo is the public identity of a player.
type PlayerInfo struct {
	SessionID SessionID `json:"sessionId" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	IsBot     bool      `json:"isBot"`
}

// PlayerData is a player's membership in a room.
type PlayerData struct {
	SessionID SessionID  `json:"sessionId" validate:"required"`
	Info      PlayerInfo `json:"info"`
	Ready     bool       `json:"ready"`
	Wins      int        `json:"wins"`
	GameState *GameState `json:"gameState,omitempty"`
}
