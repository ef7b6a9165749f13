package proto

import "ctchen222/Block-Battle/internal/game"

func testPlayerInfo(id game.SessionID, name string) game.PlayerInfo {
	return game.PlayerInfo{SessionID: id, Username: name}
}

func testGameState() game.GameState {
	s := game.NewGameState(game.PieceT, game.PieceI, game.PieceO)
	s.Board[game.BoardHeight-1][0] = game.PieceGarbage
	s.Combo = 2
	return s
}

func testRoomData() game.RoomData {
	host := testPlayerInfo("abc", "alice")
	state := testGameState()
	return game.RoomData{
		RoomID: "room-1",
		Host:   host,
		InGame: true,
		Players: []game.PlayerData{
			{SessionID: "abc", Info: host, Ready: true, Wins: 1, GameState: &state},
			{SessionID: "def", Info: testPlayerInfo("def", "bob")},
		},
		Banned: []game.PlayerInfo{testPlayerInfo("ghi", "mallory")},
		Settings: game.RoomSettings{
			Public:            true,
			MaxPlayers:        4,
			Gravity:           0.5,
			GarbageMultiplier: 1.5,
			RoundsToWin:       3,
		},
	}
}

func testEndPayload() EndPayload {
	return EndPayload{
		WinnerID:   "abc",
		WinnerInfo: testPlayerInfo("abc", "alice"),
		RoomData:   testRoomData(),
	}
}

// allEvents holds one populated value of every variant, keyed by type.
func allEvents() map[EventType]ServerEvent {
	return map[EventType]ServerEvent{
		TypeRoomData:       RoomDataEvent{Payload: RoomDataPayload{RoomData: testRoomData()}},
		TypeAuthenticated:  AuthenticatedEvent{Payload: SessionIDPayload{SessionID: "abc"}},
		TypeError:          ErrorEvent{Payload: "room is full"},
		TypePlayerJoined:   PlayerJoinedEvent{Payload: PlayerDataPayload{PlayerData: testRoomData().Players[1]}},
		TypePlayerLeft:     PlayerLeftEvent{Payload: SessionIDPayload{SessionID: "def"}},
		TypePlayerBanned:   PlayerBannedEvent{Payload: PlayerInfoPayload{PlayerInfo: testPlayerInfo("ghi", "mallory")}},
		TypePlayerUnbanned: PlayerUnbannedEvent{Payload: PlayerInfoPayload{PlayerInfo: testPlayerInfo("ghi", "mallory")}},
		TypeSettingsChanged: SettingsChangedEvent{
			Payload: RoomDataPayload{RoomData: testRoomData()},
		},
		TypeHostChanged: HostChangedEvent{Payload: PlayerInfoPayload{PlayerInfo: testPlayerInfo("def", "bob")}},
		TypeGameStarted: GameStartedEvent{},
		TypeRoundStarted: RoundStartedEvent{
			Payload: RoundStartPayload{StartsAt: NumberFromInt(1712345678000), RoomData: testRoomData()},
		},
		TypeRequestMove: RequestMoveEvent{
			Payload: RequestMovePayload{GameState: testGameState(), Players: testRoomData().Players},
		},
		TypeAction: ActionEvent{
			Payload: ActionPayload{Commands: []game.Command{game.MoveLeft, game.RotateCW, game.HardDrop}},
		},
		TypePlayerAction: PlayerActionEvent{
			Payload: PlayerActionPayload{
				SessionID: "abc",
				Commands:  []game.Command{game.Hold, game.HardDrop},
				GameState: testGameState(),
				Events: []game.GameEvent{
					{Type: game.EventPieceHeld, Piece: game.PieceT},
					{Type: game.EventLinesCleared, Lines: 2},
					{Type: game.EventGarbageSent, Amount: 1},
				},
			},
		},
		TypePlayerDamageReceived: PlayerDamageReceivedEvent{
			Payload: PlayerDamageReceivedPayload{SessionID: "abc", Damage: "12.5", GameState: testGameState()},
		},
		TypeRoundOver: RoundOverEvent{Payload: testEndPayload()},
		TypeGameOver:  GameOverEvent{Payload: testEndPayload()},
		TypeGameReset: GameResetEvent{Payload: RoomDataPayload{RoomData: testRoomData()}},
	}
}
