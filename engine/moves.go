package engine

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType numbering matches dragontoothmg so adapters can convert by value.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceValue is the material table in centipawns, indexed by PieceType.
var PieceValue = [7]int32{
	NoPieceType: 0,
	Pawn:        100,
	Knight:      300,
	Bishop:      300,
	Rook:        500,
	Queen:       900,
	King:        0,
}

var pieceLetters = [7]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

func (p PieceType) String() string {
	if p == NoPieceType || int(p) >= len(pieceLetters) {
		return "-"
	}
	return string(pieceLetters[p])
}

// Square indexes the board from a1 (0) to h8 (63).
type Square uint8

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+byte(sq.File()), '1'+byte(sq.Rank()))
}

// ParseSquare converts a coordinate like "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	return Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}

// Move is produced by the rules engine and is only valid against the
// position whose legal-move list it came from.
type Move struct {
	From      Square
	To        Square
	Piece     PieceType
	Captured  PieceType
	Promotion PieceType
	// EnPassant marks a pawn capture whose victim stands beside From.
	EnPassant bool
}

var NullMove Move

func (m Move) IsCapture() bool   { return m.Captured != NoPieceType }
func (m Move) IsPromotion() bool { return m.Promotion != NoPieceType }
func (m Move) IsNull() bool      { return m == NullMove }

// CaptureSquare is where the captured piece stood before the move.
func (m Move) CaptureSquare() Square {
	if m.EnPassant {
		return Square(m.From.Rank()*8 + m.To.File())
	}
	return m.To
}

// String renders the move in UCI long algebraic notation.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += m.Promotion.String()
	}
	return s
}

// key packs the fields that identify a move within one position.
func (m Move) key() uint32 {
	return uint32(m.From)<<9 | uint32(m.To)<<3 | uint32(m.Promotion)
}
