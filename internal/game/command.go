package game

// Command is a single player input applied to the piece in play.
type Command string

const (
	MoveLeft  Command = "move_left"
	MoveRight Command = "move_right"
	SoftDrop  Command = "soft_drop"
	HardDrop  Command = "hard_drop"
	RotateCW  Command = "rotate_cw"
	RotateCCW Command = "rotate_ccw"
	Rotate180 Command = "rotate_180"
	Hold      Command = "hold"
)

var commands = map[Command]struct{}{
	MoveLeft:  {},
	MoveRight: {},
	SoftDrop:  {},
	HardDrop:  {},
	RotateCW:  {},
	RotateCCW: {},
	Rotate180: {},
	Hold:      {},
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	_, ok := commands[c]
	return ok
}
