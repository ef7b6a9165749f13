package game

// RoomSettings are the host-controlled options of a room.
type RoomSettings struct {
	Public            bool    `json:"public"`
	MaxPlayers        int     `json:"maxPlayers" validate:"gte=0"`
	Gravity           float64 `json:"gravity" validate:"gte=0"`
	GarbageMultiplier float64 `json:"garbageMultiplier" validate:"gte=0"`
	RoundsToWin       int     `json:"roundsToWin" validate:"gte=0"`
}

// RoomData is the full state of a room shared with its members.
type RoomData struct {
	RoomID   string       `json:"roomId" validate:"required"`
	Host     PlayerInfo   `json:"host"`
	InGame   bool         `json:"inGame"`
	Players  []PlayerData `json:"players" validate:"dive"`
	Banned   []PlayerInfo `json:"banned" validate:"dive"`
	Settings RoomSettings `json:"settings"`
}

// Player returns the member with the given session id.
func (r RoomData) Player(id SessionID) (PlayerData, bool) {
	for _, p := range r.Players {
		if p.SessionID == id {
			return p, true
		}
	}
	return PlayerData{}, false
}
