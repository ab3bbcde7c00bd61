package bench

import (
	"context"
	"testing"

	"chessbot/engine"
	"chessbot/rules"
)

func benchSearch(b *testing.B, fen string, depth int, alphaBeta bool) {
	board, err := rules.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	searcher := engine.NewSearcher(engine.NewMoveEvaluator(), alphaBeta)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := searcher.Search(context.Background(), board, depth); err != nil {
			b.Fatalf("Search: %v", err)
		}
	}
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	board, err := rules.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			board.Apply(m)
			_ = board.LegalMoves()
			board.Undo(m)
		}
	}
}

func BenchmarkSearch_Initial_D3(b *testing.B) {
	benchSearch(b, rules.Startpos, 3, true)
}

func BenchmarkSearch_Initial_D3_FullWidth(b *testing.B) {
	benchSearch(b, rules.Startpos, 3, false)
}

func BenchmarkSearch_Kiwipete_D2(b *testing.B) {
	benchSearch(b, kiwipete, 2, true)
}
