package proto

import (
	"bytes"
	"ctchen222/Block-Battle/internal/validator"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
)

// eventTypes lists every registered discriminator.
var eventTypes = []EventType{
	TypeRoomData,
	TypeAuthenticated,
	TypeError,
	TypePlayerJoined,
	TypePlayerLeft,
	TypePlayerBanned,
	TypePlayerUnbanned,
	TypeSettingsChanged,
	TypeHostChanged,
	TypeGameStarted,
	TypeRoundStarted,
	TypeRequestMove,
	TypeAction,
	TypePlayerAction,
	TypePlayerDamageReceived,
	TypeRoundOver,
	TypeGameOver,
	TypeGameReset,
}

// payloadFields is the wire key table for payload objects. Decoding requires
// every listed key to be present and non-null. error carries a bare string
// and game_started carries nothing, so neither has an entry.
var payloadFields = map[EventType][]string{
	TypeRoomData:             {"roomData"},
	TypeAuthenticated:        {"sessionId"},
	TypePlayerJoined:         {"playerData"},
	TypePlayerLeft:           {"sessionId"},
	TypePlayerBanned:         {"playerInfo"},
	TypePlayerUnbanned:       {"playerInfo"},
	TypeSettingsChanged:      {"roomData"},
	TypeHostChanged:          {"playerInfo"},
	TypeRoundStarted:         {"startsAt", "roomData"},
	TypeRequestMove:          {"gameState", "players"},
	TypeAction:               {"commands"},
	TypePlayerAction:         {"sessionId", "commands", "gameState", "events"},
	TypePlayerDamageReceived: {"sessionId", "damage", "gameState"},
	TypeRoundOver:            {"winnerId", "winnerInfo", "roomData"},
	TypeGameOver:             {"winnerId", "winnerInfo", "roomData"},
	TypeGameReset:            {"roomData"},
}

type decodeFunc func(t EventType, raw json.RawMessage) (ServerEvent, error)

var decoders = map[EventType]decodeFunc{
	TypeRoomData:      payloadDecoder(func(p RoomDataPayload) ServerEvent { return RoomDataEvent{Payload: p} }),
	TypeAuthenticated: payloadDecoder(func(p SessionIDPayload) ServerEvent { return AuthenticatedEvent{Payload: p} }),
	TypeError:         decodeErrorEvent,
	TypePlayerJoined:  payloadDecoder(func(p PlayerDataPayload) ServerEvent { return PlayerJoinedEvent{Payload: p} }),
	TypePlayerLeft:    payloadDecoder(func(p SessionIDPayload) ServerEvent { return PlayerLeftEvent{Payload: p} }),
	TypePlayerBanned:  payloadDecoder(func(p PlayerInfoPayload) ServerEvent { return PlayerBannedEvent{Payload: p} }),
	TypePlayerUnbanned: payloadDecoder(func(p PlayerInfoPayload) ServerEvent {
		return PlayerUnbannedEvent{Payload: p}
	}),
	TypeSettingsChanged: payloadDecoder(func(p RoomDataPayload) ServerEvent {
		return SettingsChangedEvent{Payload: p}
	}),
	TypeHostChanged: payloadDecoder(func(p PlayerInfoPayload) ServerEvent { return HostChangedEvent{Payload: p} }),
	// Any payload sent with game_started is ignored.
	TypeGameStarted: func(EventType, json.RawMessage) (ServerEvent, error) { return GameStartedEvent{}, nil },
	TypeRoundStarted: payloadDecoder(func(p RoundStartPayload) ServerEvent {
		return RoundStartedEvent{Payload: p}
	}),
	TypeRequestMove: payloadDecoder(func(p RequestMovePayload) ServerEvent {
		return RequestMoveEvent{Payload: p}
	}),
	TypeAction: payloadDecoder(func(p ActionPayload) ServerEvent { return ActionEvent{Payload: p} }),
	TypePlayerAction: payloadDecoder(func(p PlayerActionPayload) ServerEvent {
		return PlayerActionEvent{Payload: p}
	}),
	TypePlayerDamageReceived: payloadDecoder(func(p PlayerDamageReceivedPayload) ServerEvent {
		return PlayerDamageReceivedEvent{Payload: p}
	}),
	TypeRoundOver: payloadDecoder(func(p EndPayload) ServerEvent { return RoundOverEvent{Payload: p} }),
	TypeGameOver:  payloadDecoder(func(p EndPayload) ServerEvent { return GameOverEvent{Payload: p} }),
	TypeGameReset: payloadDecoder(func(p RoomDataPayload) ServerEvent { return GameResetEvent{Payload: p} }),
}

// EventTypes returns every registered discriminator.
func EventTypes() []EventType {
	return slices.Clone(eventTypes)
}

// PayloadFields returns the wire keys required in the payload object of t.
// It returns nil for events whose payload is not an object.
func PayloadFields(t EventType) []string {
	return slices.Clone(payloadFields[t])
}

// envelope is the document layout. Type is declared first so it is emitted first.
type envelope struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Encode returns the JSON document for ev.
func Encode(ev ServerEvent) ([]byte, error) {
	if ev == nil {
		return nil, errors.New("encode: nil event")
	}
	data, err := json.Marshal(envelope{Type: ev.Type(), Payload: ev.payload()})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	return data, nil
}

// Decode parses a JSON document into the event its discriminator names.
// Errors match ErrMalformedDocument when data is not valid JSON and
// ErrSchemaMismatch when it is valid JSON but not a valid event. Unknown
// extra fields are ignored; missing fields are not.
func Decode(data []byte) (ServerEvent, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Err: fmt.Errorf("document must be an object, got %s", typeErr.Value)}
		}
		return nil, &MalformedDocumentError{Err: err}
	}

	rawType := doc["type"]
	if isNull(rawType) {
		return nil, &SchemaError{Field: "type", Err: errMissingField}
	}
	var name string
	if err := json.Unmarshal(rawType, &name); err != nil {
		return nil, &SchemaError{Field: "type", Err: fmt.Errorf("discriminator must be a string, got %s", rawType)}
	}

	t := EventType(name)
	decode, ok := decoders[t]
	if !ok {
		return nil, &SchemaError{Type: name, Field: "type", Err: fmt.Errorf("unknown event type %q", name)}
	}
	return decode(t, doc["payload"])
}

func payloadDecoder[P any](wrap func(P) ServerEvent) decodeFunc {
	return func(t EventType, raw json.RawMessage) (ServerEvent, error) {
		var p P
		if err := decodePayload(t, raw, &p); err != nil {
			return nil, err
		}
		return wrap(p), nil
	}
}

func decodePayload(t EventType, raw json.RawMessage, dst any) error {
	if isNull(raw) {
		return &SchemaError{Type: string(t), Field: "payload", Err: errMissingField}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &SchemaError{Type: string(t), Field: "payload", Err: fmt.Errorf("payload must be an object, got %s", raw)}
	}
	for _, key := range payloadFields[t] {
		if isNull(fields[key]) {
			return &SchemaError{Type: string(t), Field: "payload." + key, Err: errMissingField}
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return schemaErrorFrom(t, err)
	}

	if err := validator.GetValidator().Struct(dst); err != nil {
		var verrs playgroundvalidator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			return &SchemaError{
				Type:  string(t),
				Field: payloadPath(fe.Namespace()),
				Err:   fmt.Errorf("failed %q validation", fe.Tag()),
			}
		}
		return &SchemaError{Type: string(t), Field: "payload", Err: err}
	}
	return nil
}

func decodeErrorEvent(t EventType, raw json.RawMessage) (ServerEvent, error) {
	if isNull(raw) {
		return nil, &SchemaError{Type: string(t), Field: "payload", Err: errMissingField}
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, schemaErrorFrom(t, err)
	}
	return ErrorEvent{Payload: msg}, nil
}

func schemaErrorFrom(t EventType, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := "payload"
		if typeErr.Field != "" {
			field += "." + typeErr.Field
		}
		return &SchemaError{
			Type:  string(t),
			Field: field,
			Err:   fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &SchemaError{Type: string(t), Field: "payload", Err: err}
}

// payloadPath turns a validator namespace such as
// "RoundStartPayload.roomData.roomId" into "payload.roomData.roomId".
func payloadPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return "payload"
	}
	return "payload." + rest
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
