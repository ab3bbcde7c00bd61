package engine

import (
	"math/rand"
	"testing"
)

func sampleMoves(t *testing.T) []Move {
	return []Move{
		{From: sq(t, "g1"), To: sq(t, "f3"), Piece: Knight},
		{From: sq(t, "e4"), To: sq(t, "d5"), Piece: Pawn, Captured: Pawn},
		{From: sq(t, "c4"), To: sq(t, "f7"), Piece: Bishop, Captured: Pawn},
		{From: sq(t, "d1"), To: sq(t, "d8"), Piece: Queen, Captured: Queen},
		{From: sq(t, "a2"), To: sq(t, "a3"), Piece: Pawn},
		{From: sq(t, "b7"), To: sq(t, "b8"), Piece: Pawn, Promotion: Knight},
		{From: sq(t, "b7"), To: sq(t, "b8"), Piece: Pawn, Promotion: Queen},
		{From: sq(t, "h1"), To: sq(t, "h7"), Piece: Rook, Captured: Rook},
	}
}

func TestOrderMovesCapturesFirst(t *testing.T) {
	ordered := OrderMoves(sampleMoves(t))

	if ordered[0].Captured != Queen {
		t.Fatalf("first move = %v, want the queen capture", ordered[0])
	}
	if ordered[1].Captured != Rook {
		t.Fatalf("second move = %v, want the rook capture", ordered[1])
	}
	for i := 1; i < len(ordered); i++ {
		if EstimateMove(ordered[i-1]) < EstimateMove(ordered[i]) {
			t.Fatalf("moves out of order at %d: %v", i, MovesString(ordered))
		}
	}
}

func TestOrderMovesIgnoresInputOrder(t *testing.T) {
	moves := sampleMoves(t)
	want := MovesString(OrderMoves(moves))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]Move(nil), moves...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := MovesString(OrderMoves(shuffled)); got != want {
			t.Fatalf("order depends on input:\n got %s\nwant %s", got, want)
		}
	}
}

func TestOrderMovesLeavesInputAlone(t *testing.T) {
	moves := sampleMoves(t)
	before := MovesString(moves)
	_ = OrderMoves(moves)
	if after := MovesString(moves); after != before {
		t.Fatalf("input mutated: %s -> %s", before, after)
	}
	if got := OrderMoves(nil); len(got) != 0 {
		t.Fatalf("OrderMoves(nil) = %v", got)
	}
}
