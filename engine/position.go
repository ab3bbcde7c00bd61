package engine

import "time"

// Position is the rules-engine handle the search walks. The search never
// copies it; every Apply is paired with exactly one Undo of the same move.
type Position interface {
	LegalMoves() []Move
	Apply(m Move)
	Undo(m Move)
	IsCheckmate() bool
	IsDraw() bool
	IsCheck() bool
	FiftyMoveCounter() int
	SideToMove() Color
}

// Clock reports the time situation at the start of a turn.
type Clock interface {
	Remaining() time.Duration
	OpponentRemaining() time.Duration
	ElapsedThisTurn() time.Duration
}
