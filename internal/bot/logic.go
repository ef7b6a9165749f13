package bot

import (
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/pkg/proto"
	"math/rand/v2"
	"slices"
)

// spawnColumn is the column new pieces enter at.
const spawnColumn = game.BoardWidth/2 - 1

// Strategy decides the commands for the piece in play.
type Strategy interface {
	NextMove(req proto.RequestMovePayload) *proto.ActionPayload
}

// NewStrategy returns the strategy for the given difficulty. Unknown
// difficulties play like "medium".
func NewStrategy(difficulty string, seed uint64) Strategy {
	switch difficulty {
	case "easy":
		return NewRandomStrategy(seed)
	default:
		return FlatStrategy{}
	}
}

// RandomStrategy makes a completely random placement.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy creates a RandomStrategy. The same seed replays the same moves.
func NewRandomStrategy(seed uint64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomStrategy) NextMove(req proto.RequestMovePayload) *proto.ActionPayload {
	action := proto.NewActionPayload()
	if req.GameState.CanHold && s.rng.IntN(4) == 0 {
		action.Push(game.Hold)
	}

	rotations := rotationCommands(s.rng.IntN(4))
	action.Append(&rotations)

	shift := shiftCommands(s.rng.IntN(game.BoardWidth) - spawnColumn)
	action.Append(&shift)

	return action.Push(game.HardDrop)
}

// FlatStrategy drops the piece over the lowest column, keeping the stack flat.
type FlatStrategy struct{}

func (FlatStrategy) NextMove(req proto.RequestMovePayload) *proto.ActionPayload {
	action := proto.NewActionPayload()
	heights := req.GameState.ColumnHeights()
	if len(heights) == 0 {
		return action.Push(game.HardDrop)
	}

	target := slices.Index(heights, slices.Min(heights))
	shift := shiftCommands(target - spawnColumn)
	return action.Append(&shift).Push(game.HardDrop)
}

// rotationCommands returns the commands for n clockwise quarter turns.
func rotationCommands(n int) []game.Command {
	switch n % 4 {
	case 1:
		return []game.Command{game.RotateCW}
	case 2:
		return []game.Command{game.Rotate180}
	case 3:
		return []game.Command{game.RotateCCW}
	default:
		return nil
	}
}

// shiftCommands returns the moves for a horizontal shift; negative is left.
func shiftCommands(n int) []game.Command {
	cmd := game.MoveRight
	if n < 0 {
		cmd, n = game.MoveLeft, -n
	}
	moves := make([]game.Command, 0, n)
	for range n {
		moves = append(moves, cmd)
	}
	return moves
}
