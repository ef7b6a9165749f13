package game

// Piece identifies a tetromino, or the contents of a board cell.
type Piece string

const (
	PieceNone    Piece = ""
	PieceI       Piece = "I"
	PieceJ       Piece = "J"
	PieceL       Piece = "L"
	PieceO       Piece = "O"
	PieceS       Piece = "S"
	PieceT       Piece = "T"
	PieceZ       Piece = "Z"
	PieceGarbage Piece = "G"

	// Board dimensions
	BoardWidth  = 10
	BoardHeight = 20
)

// GameState is one player's board as seen by the server.
type GameState struct {
	Board         [][]Piece `json:"board"`
	Current       Piece     `json:"current"`
	Held          Piece     `json:"held,omitempty"`
	Queue         []Piece   `json:"queue"`
	CanHold       bool      `json:"canHold"`
	Combo         int       `json:"combo"`
	B2B           int       `json:"b2b"`
	GarbageQueued int       `json:"garbageQueued"`
	Dead          bool      `json:"dead"`
}

// NewGameState returns an empty board with the given piece in play.
func NewGameState(current Piece, queue ...Piece) GameState {
	board := make([][]Piece, BoardHeight)
	for i := range board {
		board[i] = make([]Piece, BoardWidth)
	}
	if queue == nil {
		queue = []Piece{}
	}
	return GameState{
		Board:   board,
		Current: current,
		Queue:   queue,
		CanHold: true,
	}
}

// ColumnHeights returns the height of the highest filled cell in every column.
// Row 0 is the top of the board.
func (s GameState) ColumnHeights() []int {
	width := BoardWidth
	if len(s.Board) > 0 {
		width = len(s.Board[0])
	}
	heights := make([]int, width)
	for col := range heights {
		for row := range s.Board {
			if col < len(s.Board[row]) && s.Board[row][col] != PieceNone {
				heights[col] = len(s.Board) - row
				break
			}
		}
	}
	return heights
}

// GameEventType names something that happened on a board.
type GameEventType string

const (
	EventPiecePlaced     GameEventType = "piece_placed"
	EventLinesCleared    GameEventType = "lines_cleared"
	EventGarbageSent     GameEventType = "garbage_sent"
	EventGarbageReceived GameEventType = "garbage_received"
	EventPieceHeld       GameEventType = "piece_held"
	EventToppedOut       GameEventType = "topped_out"
)

// GameEvent is a single board event produced while applying a batch of commands.
type GameEvent struct {
	Type   GameEventType `json:"type" validate:"required,oneof=piece_placed lines_cleared garbage_sent garbage_received piece_held topped_out"`
	Piece  Piece         `json:"piece,omitempty"`
	Lines  int           `json:"lines,omitempty"`
	Amount int           `json:"amount,omitempty"`
}
