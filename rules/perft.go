package rules

// Perft counts leaf nodes of the legal move tree to depth. Every node is
// reached through Apply and left through Undo.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		b.Apply(m)
		nodes += Perft(b, depth-1)
		b.Undo(m)
	}
	return nodes
}

// PerftDivide reports the perft count below each root move.
func PerftDivide(b *Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth <= 0 {
		return div
	}
	for _, m := range b.LegalMoves() {
		b.Apply(m)
		div[m.String()] = Perft(b, depth-1)
		b.Undo(m)
	}
	return div
}
