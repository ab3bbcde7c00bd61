package rules

import "testing"

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"startpos d1", Startpos, 1, 20},
		{"startpos d2", Startpos, 2, 400},
		{"startpos d3", Startpos, 3, 8902},
		{"kiwipete d1", kiwipete, 1, 48},
		{"kiwipete d2", kiwipete, 2, 2039},
		{"position 3 d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"position 4 d2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			before := b.FEN()
			if got := Perft(b, tt.depth); got != tt.want {
				t.Fatalf("Perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
			if b.FEN() != before {
				t.Fatalf("perft left the board at %s", b.FEN())
			}
		})
	}
}

func TestPerftDivide(t *testing.T) {
	b := NewBoard()
	div := PerftDivide(b, 2)
	if len(div) != 20 {
		t.Fatalf("divide has %d root moves", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide total = %d, want 400", sum)
	}
	if div["e2e4"] != 20 {
		t.Fatalf("e2e4 = %d, want 20", div["e2e4"])
	}
}
