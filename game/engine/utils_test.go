package engine

import (
	"errors"
	"testing"
)

func TestRenderBoard(t *testing.T) {
	lines := RenderBoard(DefaultPuzzleState())
	expected := []string{
		"#   |.   |k",
		".   |b   |.",
		"r   |.   |.",
	}

	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), len(lines))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}

	stacked := mustState(t, pos(1, 1), pos(1, 1), pos(1, 1), pos(1, 2))
	if got := RenderBoard(stacked)[1]; got != ".   |#rb |k" {
		t.Errorf("Unexpected stacked row: %q", got)
	}
}

func TestPiecesAt(t *testing.T) {
	s := mustState(t, pos(1, 1), pos(1, 1), pos(2, 2), pos(1, 1))

	pieces := PiecesAt(s, pos(1, 1))
	if len(pieces) != 3 || pieces[0] != Block || pieces[1] != RedShoe || pieces[2] != BlackShoe {
		t.Errorf("Unexpected pieces: %v", pieces)
	}
	if len(PiecesAt(s, pos(0, 0))) != 0 {
		t.Error("Expected empty cell")
	}
}

func TestShoeDistance(t *testing.T) {
	if d := ShoeDistance(DefaultPuzzleState()); d != 2 {
		t.Errorf("Expected distance 2, got %d", d)
	}
	goal := mustState(t, pos(0, 0), pos(2, 2), pos(2, 2), pos(0, 1))
	if d := ShoeDistance(goal); d != 0 {
		t.Errorf("Expected distance 0 on a goal, got %d", d)
	}
}

func TestCountSuccessfulMoves(t *testing.T) {
	entries := []MoveHistoryEntry{{Success: true}, {Success: false}, {Success: true}}
	if n := CountSuccessfulMoves(entries); n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
}

func TestParsePositions(t *testing.T) {
	s, err := ParsePositions("0,0 2,0 1,1 0,2")
	if err != nil {
		t.Fatalf("ParsePositions failed: %v", err)
	}
	if s != DefaultPuzzleState() {
		t.Errorf("Expected classic board, got %s", s)
	}

	s, err = ParsePositions("(1,1);(1,1);(1,1);(1,2)")
	if err != nil {
		t.Fatalf("ParsePositions failed: %v", err)
	}
	if !s.IsGoal() {
		t.Errorf("Expected goal board, got %s", s)
	}

	for _, bad := range []string{"", "0,0 2,0 1,1", "a,b 2,0 1,1 0,2", "0,0 2,0 1,1 1,1"} {
		if _, err := ParsePositions(bad); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ParsePositions(%q): expected ErrInvalidConfiguration, got %v", bad, err)
		}
	}
}
