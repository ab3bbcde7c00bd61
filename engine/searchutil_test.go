package engine

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score int32
		want  string
	}{
		{0, "cp 0"},
		{-25, "cp -25"},
		{340, "cp 340"},
		{MateScore(1), "mate 1"},
		{MateScore(1) - 120, "mate 1"},
		{MateScore(3), "mate 2"},
		{MateScore(3) + 300, "mate 2"},
		{MateScore(5), "mate 3"},
		{-MateScore(2), "mate -1"},
		{-MateScore(4) + 50, "mate -2"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.score); got != tt.want {
			t.Fatalf("FormatScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestMateScoreOrdering(t *testing.T) {
	for ply := 1; ply < MaxSearchDepth+2; ply++ {
		if MateScore(ply) <= MateScore(ply+1) {
			t.Fatalf("mate at ply %d should outscore ply %d", ply, ply+1)
		}
		if !IsMateScore(MateScore(ply)) || !IsMateScore(-MateScore(ply)) {
			t.Fatalf("MateScore(%d) not recognised", ply)
		}
	}
	if IsMateScore(5000) {
		t.Fatalf("material score taken for mate")
	}
}

func TestMovesString(t *testing.T) {
	moves := []Move{
		{From: sq(t, "e2"), To: sq(t, "e4"), Piece: Pawn},
		{From: sq(t, "e7"), To: sq(t, "e8"), Piece: Pawn, Promotion: Queen},
	}
	if got := MovesString(moves); got != "e2e4 e7e8q" {
		t.Fatalf("MovesString = %q", got)
	}
	if got := MovesString(nil); got != "" {
		t.Fatalf("MovesString(nil) = %q", got)
	}
}

func TestDumpStats(t *testing.T) {
	var buf bytes.Buffer
	DumpStats(&buf, Stats{Nodes: 12, Evaluations: 34, BetaCutoffs: 5, MateCutoffs: 1})
	out := buf.String()
	for _, want := range []string{"Nodes: 12", "Evaluations: 34", "Beta cutoffs: 5", "Mate cutoffs: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "info string") {
			t.Fatalf("line %q is not an info string", line)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 1, 3) != 3 || Clamp(-2, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("Clamp broken")
	}
	if abs(int32(-4)) != 4 || abs(4) != 4 {
		t.Fatalf("abs broken")
	}
	if perMillisecond(uint64(100), 0) != 100 {
		t.Fatalf("zero elapsed should count as one millisecond")
	}
	if perMillisecond(uint64(100), 50) != 2 {
		t.Fatalf("perMillisecond(100, 50) != 2")
	}
}

func TestMoveString(t *testing.T) {
	if NullMove.String() != "0000" {
		t.Fatalf("null move = %q", NullMove.String())
	}
	if _, err := ParseSquare("i9"); err == nil {
		t.Fatalf("ParseSquare accepted i9")
	}
	if s := sq(t, "h8"); s != 63 || s.String() != "h8" {
		t.Fatalf("h8 = %d %q", s, s.String())
	}
}
