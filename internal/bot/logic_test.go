package bot

import (
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/pkg/proto"
	"slices"
	"testing"
)

func requestFor(state game.GameState) proto.RequestMovePayload {
	return proto.RequestMovePayload{GameState: state}
}

func TestShiftCommands(t *testing.T) {
	tests := []struct {
		name  string
		shift int
		want  []game.Command
	}{
		{name: "none", shift: 0, want: []game.Command{}},
		{name: "right", shift: 2, want: []game.Command{game.MoveRight, game.MoveRight}},
		{name: "left", shift: -3, want: []game.Command{game.MoveLeft, game.MoveLeft, game.MoveLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shiftCommands(tt.shift)
			if !slices.Equal(got, tt.want) {
				t.Errorf("shiftCommands(%d) = %v, want %v", tt.shift, got, tt.want)
			}
		})
	}
}

func TestRotationCommands(t *testing.T) {
	if got := rotationCommands(0); len(got) != 0 {
		t.Errorf("Expected no rotation, got %v", got)
	}
	if got := rotationCommands(3); !slices.Equal(got, []game.Command{game.RotateCCW}) {
		t.Errorf("Expected rotate_ccw, got %v", got)
	}
}

func TestRandomStrategyAlwaysHardDrops(t *testing.T) {
	s := NewRandomStrategy(7)
	state := game.NewGameState(game.PieceT, game.PieceI)
	state.CanHold = true

	for i := 0; i < 100; i++ {
		action := s.NextMove(requestFor(state))
		cmds := action.Commands
		if len(cmds) == 0 || cmds[len(cmds)-1] != game.HardDrop {
			t.Fatalf("Expected batch to end with hard_drop, got %v", cmds)
		}
		for _, c := range cmds {
			if !c.Valid() {
				t.Fatalf("Invalid command %q in %v", c, cmds)
			}
		}
		if slices.Contains(cmds[1:], game.Hold) {
			t.Fatalf("Hold may only lead the batch, got %v", cmds)
		}
	}
}

func TestRandomStrategyIsSeeded(t *testing.T) {
	state := game.NewGameState(game.PieceS)
	a, b := NewRandomStrategy(42), NewRandomStrategy(42)
	for i := 0; i < 20; i++ {
		got, want := a.NextMove(requestFor(state)).Commands, b.NextMove(requestFor(state)).Commands
		if !slices.Equal(got, want) {
			t.Fatalf("Move %d differs for the same seed: %v vs %v", i, got, want)
		}
	}
}

func TestRandomStrategyNoHoldWhenUnavailable(t *testing.T) {
	s := NewRandomStrategy(1)
	state := game.NewGameState(game.PieceZ)
	state.CanHold = false

	for i := 0; i < 100; i++ {
		if slices.Contains(s.NextMove(requestFor(state)).Commands, game.Hold) {
			t.Fatal("Expected no hold while hold is unavailable")
		}
	}
}

func TestFlatStrategyTargetsLowestColumn(t *testing.T) {
	state := game.NewGameState(game.PieceO)
	for col := 1; col < game.BoardWidth; col++ {
		state.Board[game.BoardHeight-1][col] = game.PieceGarbage
	}

	got := FlatStrategy{}.NextMove(requestFor(state)).Commands
	want := []game.Command{game.MoveLeft, game.MoveLeft, game.MoveLeft, game.MoveLeft, game.HardDrop}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFlatStrategyLevelBoardPicksLeftmost(t *testing.T) {
	got := FlatStrategy{}.NextMove(requestFor(game.GameState{})).Commands
	want := []game.Command{game.MoveLeft, game.MoveLeft, game.MoveLeft, game.MoveLeft, game.HardDrop}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNewStrategy(t *testing.T) {
	if _, ok := NewStrategy("easy", 1).(*RandomStrategy); !ok {
		t.Error("Expected easy to play randomly")
	}
	if _, ok := NewStrategy("hard", 1).(FlatStrategy); !ok {
		t.Error("Expected hard to keep the stack flat")
	}
}
