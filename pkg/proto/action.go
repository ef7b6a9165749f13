package proto

import (
	"ctchen222/Block-Battle/internal/game"
	"encoding/json"
)

// ActionPayload is the batch of commands a client sends for its current
// piece. It is built by a single owner and handed off once encoded; it is not
// safe for concurrent use.
type ActionPayload struct {
	Commands []game.Command `json:"commands" validate:"dive,command"`
}

// NewActionPayload returns an empty batch.
func NewActionPayload() *ActionPayload {
	return &ActionPayload{Commands: []game.Command{}}
}

// Push adds a command to the end of the batch.
func (a *ActionPayload) Push(command game.Command) *ActionPayload {
	a.Commands = append(a.Commands, command)
	return a
}

// Append moves every command in commands to the end of the batch, keeping
// their order. commands is left empty.
func (a *ActionPayload) Append(commands *[]game.Command) *ActionPayload {
	if commands == nil {
		return a
	}
	a.Commands = append(a.Commands, *commands...)
	clear(*commands)
	*commands = (*commands)[:0]
	return a
}

// Event wraps the batch in an action event.
func (a *ActionPayload) Event() ActionEvent {
	return ActionEvent{Payload: *a}
}

func (a ActionPayload) MarshalJSON() ([]byte, error) {
	type alias ActionPayload
	if a.Commands == nil {
		a.Commands = []game.Command{}
	}
	return json.Marshal(alias(a))
}
