package rules

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

const darkSquares uint64 = 0x55AA55AA55AA55AA

// isInsufficientMaterial covers the dead positions neither side can win:
// bare kings, a single minor piece, and bishops that all share one colour.
func isInsufficientMaterial(b *dragontoothmg.Board) bool {
	w, bl := &b.White, &b.Black
	if w.Pawns|bl.Pawns|w.Rooks|bl.Rooks|w.Queens|bl.Queens != 0 {
		return false
	}

	knights := bits.OnesCount64(w.Knights | bl.Knights)
	bishops := w.Bishops | bl.Bishops
	bishopCount := bits.OnesCount64(bishops)

	switch {
	case knights == 0 && bishopCount == 0:
		return true
	case knights+bishopCount == 1:
		return true
	case knights == 0 && (bishops&darkSquares == 0 || bishops&^darkSquares == 0):
		return true
	}
	return false
}
