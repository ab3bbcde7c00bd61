package engine

// Evaluator scores the change a single move made. pos has already been
// advanced by m; mover is the side that played m. Positive favours mover.
type Evaluator interface {
	EvaluateMove(pos Position, m Move, mover Color) int32
}

const (
	DefaultDrawScore       int32 = -25
	DefaultCheckBonus      int32 = 40
	DefaultCheckFiftyLimit       = 30

	CentralPieceBonus int32 = 25
	PawnAdvanceBonus  int32 = 5
)

// MoveEvaluator is the table-driven material and placement heuristic.
type MoveEvaluator struct {
	// DrawScore is returned for any move that reaches a drawn position.
	// Slightly negative so the bot keeps playing for a win.
	DrawScore int32
	// CheckBonus is awarded for giving check while the fifty-move counter
	// is below CheckFiftyLimit.
	CheckBonus      int32
	CheckFiftyLimit int
}

func NewMoveEvaluator() *MoveEvaluator {
	return &MoveEvaluator{
		DrawScore:       DefaultDrawScore,
		CheckBonus:      DefaultCheckBonus,
		CheckFiftyLimit: DefaultCheckFiftyLimit,
	}
}

func (e *MoveEvaluator) EvaluateMove(pos Position, m Move, mover Color) int32 {
	if pos.IsDraw() {
		return e.DrawScore
	}

	var score int32

	// Late checks are not rewarded; they tend to end in perpetual shuffling.
	if pos.IsCheck() && pos.FiftyMoveCounter() < e.CheckFiftyLimit {
		score += e.CheckBonus
	}

	if m.IsCapture() {
		score += PieceValue[m.Captured]
		score += PlacementValue(m.CaptureSquare(), m.Captured, mover.Other())
	}

	if m.IsPromotion() {
		score += PieceValue[m.Promotion] - PieceValue[Pawn]
	}

	score += PlacementValue(m.To, m.Piece, mover) - PlacementValue(m.From, m.Piece, mover)
	return score
}

// PlacementValue is the positional worth of a piece of the given colour
// standing on sq.
func PlacementValue(sq Square, piece PieceType, owner Color) int32 {
	switch piece {
	case Knight, Bishop, Queen:
		if isCentral(sq) {
			return CentralPieceBonus
		}
	case Pawn:
		// Ramp towards the promotion rank, mirrored for black.
		if owner == White {
			return int32(sq.Rank()) * PawnAdvanceBonus
		}
		return int32(7-sq.Rank()) * PawnAdvanceBonus
	}
	return 0
}

// isCentral reports whether sq lies in the c3-f6 block.
func isCentral(sq Square) bool {
	f, r := sq.File(), sq.Rank()
	return f >= 2 && f <= 5 && r >= 2 && r <= 5
}
