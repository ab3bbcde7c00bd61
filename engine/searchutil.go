package engine

import "fmt"

// FormatScore renders a score the way UCI "info score" expects it.
func FormatScore(score int32) string {
	if IsMateScore(score) {
		// Mate scores carry small move deltas on top; round to the nearest ply.
		plies := (MaxScore - abs(score) + MatePly/2) / MatePly
		if plies < 1 {
			plies = 1
		}
		mateInN := (plies + 1) / 2
		if score < 0 {
			mateInN = -mateInN
		}
		return fmt.Sprintf("mate %d", mateInN)
	}
	return fmt.Sprintf("cp %d", score)
}

// MovesString joins moves with spaces in UCI notation.
func MovesString(moves []Move) (theMoves string) {
	for i, move := range moves {
		if i > 0 {
			theMoves += " "
		}
		theMoves += move.String()
	}
	return theMoves
}
