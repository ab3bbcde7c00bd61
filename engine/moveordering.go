package engine

type move struct {
	move  Move
	score int32
}

type moveList struct {
	moves []move
}

/*
	Move ordering only decides which branch is walked first. Captures of the
	most valuable piece come first; quiet moves all estimate to zero. Equal
	estimates fall back to the move's squares so the order never depends on
	how the rules engine happened to list the moves.
*/

// OrderMoves returns a copy of moves sorted by estimated value, best first.
func OrderMoves(moves []Move) []Move {
	list := scoreMovesList(moves)
	list.sort()

	ordered := make([]Move, len(list.moves))
	for i := range list.moves {
		ordered[i] = list.moves[i].move
	}
	return ordered
}

// EstimateMove is the cheap static guess used for ordering.
func EstimateMove(m Move) int32 {
	if m.IsCapture() {
		return PieceValue[m.Captured]
	}
	return 0
}

func scoreMovesList(moves []Move) (movesList moveList) {
	movesList.moves = make([]move, len(moves))
	for i := 0; i < len(moves); i++ {
		movesList.moves[i].move = moves[i]
		movesList.moves[i].score = EstimateMove(moves[i])
	}
	return movesList
}

func (l *moveList) sort() {
	quickSort(l.moves, 0, len(l.moves)-1)
}

// before reports whether a belongs ahead of b.
func before(a, b move) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.move.key() < b.move.key()
}

func quickSort(moves []move, start, end int) {
	for start < end {
		p := partition(moves, start, end)
		// Recurse into the smaller half to bound stack depth.
		if p-start < end-p {
			quickSort(moves, start, p-1)
			start = p + 1
		} else {
			quickSort(moves, p+1, end)
			end = p - 1
		}
	}
}

func partition(moves []move, start, end int) int {
	pivot := moves[end]
	pIndex := start

	for i := start; i < end; i++ {
		if before(moves[i], pivot) {
			moves[i], moves[pIndex] = moves[pIndex], moves[i]
			pIndex++
		}
	}
	moves[pIndex], moves[end] = moves[end], moves[pIndex]
	return pIndex
}
