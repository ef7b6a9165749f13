// Package proto defines the events exchanged between the game server and
// its clients.
//
// Every document on the wire is a JSON object with a "type" discriminator and,
// for all events but game_started, a "payload" object whose keys are
// lowerCamelCase:
//
//	{"type":"round_started","payload":{"startsAt":1712345678,"roomData":{...}}}
package proto

// EventType is the discriminator of a ServerEvent.
type EventType string

const (
	TypeRoomData             EventType = "room_data"
	TypeAuthenticated        EventType = "authenticated"
	TypeError                EventType = "error"
	TypePlayerJoined         EventType = "player_joined"
	TypePlayerLeft           EventType = "player_left"
	TypePlayerBanned         EventType = "player_banned"
	TypePlayerUnbanned       EventType = "player_unbanned"
	TypeSettingsChanged      EventType = "settings_changed"
	TypeHostChanged          EventType = "host_changed"
	TypeGameStarted          EventType = "game_started"
	TypeRoundStarted         EventType = "round_started"
	TypeRequestMove          EventType = "request_move"
	TypeAction               EventType = "action"
	TypePlayerAction         EventType = "player_action"
	TypePlayerDamageReceived EventType = "player_damage_received"
	TypeRoundOver            EventType = "round_over"
	TypeGameOver             EventType = "game_over"
	TypeGameReset            EventType = "game_reset"
)

// ServerEvent is one of the event structs in this package. The set is closed.
type ServerEvent interface {
	Type() EventType
	payload() any
}

type RoomDataEvent struct{ Payload RoomDataPayload }

type AuthenticatedEvent struct{ Payload SessionIDPayload }

// ErrorEvent carries a human readable message as a bare JSON string payload.
type ErrorEvent struct{ Payload string }

type PlayerJoinedEvent struct{ Payload PlayerDataPayload }

type PlayerLeftEvent struct{ Payload SessionIDPayload }

type PlayerBannedEvent struct{ Payload PlayerInfoPayload }

type PlayerUnbannedEvent struct{ Payload PlayerInfoPayload }

type SettingsChangedEvent struct{ Payload RoomDataPayload }

type HostChangedEvent struct{ Payload PlayerInfoPayload }

// GameStartedEvent has no payload and encodes as {"type":"game_started"}.
type GameStartedEvent struct{}

type RoundStartedEvent struct{ Payload RoundStartPayload }

type RequestMoveEvent struct{ Payload RequestMovePayload }

// ActionEvent is sent by a client with the commands for its current piece.
type ActionEvent struct{ Payload ActionPayload }

type PlayerActionEvent struct{ Payload PlayerActionPayload }

type PlayerDamageReceivedEvent struct{ Payload PlayerDamageReceivedPayload }

type RoundOverEvent struct{ Payload EndPayload }

type GameOverEvent struct{ Payload EndPayload }

type GameResetEvent struct{ Payload RoomDataPayload }

func (RoomDataEvent) Type() EventType             { return TypeRoomData }
func (AuthenticatedEvent) Type() EventType        { return TypeAuthenticated }
func (ErrorEvent) Type() EventType                { return TypeError }
func (PlayerJoinedEvent) Type() EventType         { return TypePlayerJoined }
func (PlayerLeftEvent) Type() EventType           { return TypePlayerLeft }
func (PlayerBannedEvent) Type() EventType         { return TypePlayerBanned }
func (PlayerUnbannedEvent) Type() EventType       { return TypePlayerUnbanned }
func (SettingsChangedEvent) Type() EventType      { return TypeSettingsChanged }
func (HostChangedEvent) Type() EventType          { return TypeHostChanged }
func (GameStartedEvent) Type() EventType          { return TypeGameStarted }
func (RoundStartedEvent) Type() EventType         { return TypeRoundStarted }
func (RequestMoveEvent) Type() EventType          { return TypeRequestMove }
func (ActionEvent) Type() EventType               { return TypeAction }
func (PlayerActionEvent) Type() EventType         { return TypePlayerAction }
func (PlayerDamageReceivedEvent) Type() EventType { return TypePlayerDamageReceived }
func (RoundOverEvent) Type() EventType            { return TypeRoundOver }
func (GameOverEvent) Type() EventType             { return TypeGameOver }
func (GameResetEvent) Type() EventType            { return TypeGameReset }

func (e RoomDataEvent) payload() any             { return e.Payload }
func (e AuthenticatedEvent) payload() any        { return e.Payload }
func (e ErrorEvent) payload() any                { return e.Payload }
func (e PlayerJoinedEvent) payload() any         { return e.Payload }
func (e PlayerLeftEvent) payload() any           { return e.Payload }
func (e PlayerBannedEvent) payload() any         { return e.Payload }
func (e PlayerUnbannedEvent) payload() any       { return e.Payload }
func (e SettingsChangedEvent) payload() any      { return e.Payload }
func (e HostChangedEvent) payload() any          { return e.Payload }
func (GameStartedEvent) payload() any            { return nil }
func (e RoundStartedEvent) payload() any         { return e.Payload }
func (e RequestMoveEvent) payload() any          { return e.Payload }
func (e ActionEvent) payload() any               { return e.Payload }
func (e PlayerActionEvent) payload() any         { return e.Payload }
func (e PlayerDamageReceivedEvent) payload() any { return e.Payload }
func (e RoundOverEvent) payload() any            { return e.Payload }
func (e GameOverEvent) payload() any             { return e.Payload }
func (e GameResetEvent) payload() any            { return e.Payload }
