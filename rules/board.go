// Package rules adapts dragontoothmg to the engine.Position contract: legal
// move generation, apply/undo, check, mate and draw detection.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"chessbot/engine"
)

const Startpos = dragontoothmg.Startpos

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrIllegalMove = errors.New("illegal move")
)

// nodeCache holds the legal moves of one position on the stack, decorated for
// the engine and paired with dragontoothmg's own encoding.
type nodeCache struct {
	ready   bool
	inCheck bool
	moves   []engine.Move
	raw     []dragontoothmg.Move
}

type undoEntry struct {
	move    engine.Move
	unapply func()
}

// Board is a mutable position. Apply and Undo must be strictly nested; Undo
// panics when handed anything but the most recently applied move.
type Board struct {
	b      dragontoothmg.Board
	undo   []undoEntry
	caches []nodeCache
	states stateStack
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board, err := ParseFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return board
}

func ParseFEN(fen string) (board *Board, err error) {
	fen, err = normalizeFEN(fen)
	if err != nil {
		return nil, err
	}

	// dragontoothmg panics on input it cannot index.
	defer func() {
		if r := recover(); r != nil {
			board = nil
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()

	board = &Board{b: dragontoothmg.ParseFen(fen)}
	board.caches = append(board.caches, nodeCache{})
	board.states.reset(board.b.Hash(), int(board.b.Halfmoveclock))
	return board, nil
}

func (b *Board) FEN() string {
	return b.b.ToFen()
}

func (b *Board) Hash() uint64 {
	return b.b.Hash()
}

func (b *Board) String() string {
	return b.FEN()
}

// Ply is the number of moves applied since the board was created.
func (b *Board) Ply() int {
	return len(b.undo)
}

func (b *Board) current() *nodeCache {
	c := &b.caches[len(b.caches)-1]
	if !c.ready {
		b.generate(c)
	}
	return c
}

func (b *Board) generate(c *nodeCache) {
	raw := b.b.GenerateLegalMoves()
	c.raw = raw
	c.moves = make([]engine.Move, len(raw))
	for i := range raw {
		c.moves[i] = b.decorate(raw[i])
	}
	c.inCheck = b.b.OurKingInCheck()
	c.ready = true
}

// decorate fills in the moving, captured and promotion piece types.
func (b *Board) decorate(raw dragontoothmg.Move) engine.Move {
	own, opp := &b.b.White, &b.b.Black
	if !b.b.Wtomove {
		own, opp = opp, own
	}

	from, to := raw.From(), raw.To()
	moved, _ := GetPieceTypeAtPosition(from, own)
	captured, _ := GetPieceTypeAtPosition(to, opp)

	// En passant lands on an empty square.
	enPassant := moved == dragontoothmg.Pawn && captured == dragontoothmg.Nothing && from%8 != to%8
	if enPassant {
		captured = dragontoothmg.Pawn
	}

	return engine.Move{
		From:      engine.Square(from),
		To:        engine.Square(to),
		Piece:     engine.PieceType(moved),
		Captured:  engine.PieceType(captured),
		Promotion: engine.PieceType(raw.Promote()),
		EnPassant: enPassant,
	}
}

// GetPieceTypeAtPosition reports which piece of one colour stands on position.
func GetPieceTypeAtPosition(position uint8, bitboards *dragontoothmg.Bitboards) (pieceType dragontoothmg.Piece, occupied bool) {
	mask := uint64(1) << position
	switch {
	case bitboards.Pawns&mask != 0:
		return dragontoothmg.Pawn, true
	case bitboards.Knights&mask != 0:
		return dragontoothmg.Knight, true
	case bitboards.Bishops&mask != 0:
		return dragontoothmg.Bishop, true
	case bitboards.Rooks&mask != 0:
		return dragontoothmg.Rook, true
	case bitboards.Queens&mask != 0:
		return dragontoothmg.Queen, true
	case bitboards.Kings&mask != 0:
		return dragontoothmg.King, true
	}
	return dragontoothmg.Nothing, false
}

// LegalMoves returns a fresh slice; callers may reorder it.
func (b *Board) LegalMoves() []engine.Move {
	c := b.current()
	moves := make([]engine.Move, len(c.moves))
	copy(moves, c.moves)
	return moves
}

func (b *Board) Apply(m engine.Move) {
	c := b.current()
	index := -1
	for i := range c.moves {
		if c.moves[i] == m {
			index = i
			break
		}
	}
	if index < 0 {
		panic(fmt.Sprintf("rules: %s is not legal in %s", m, b.FEN()))
	}

	unapply := b.b.Apply(c.raw[index])
	b.undo = append(b.undo, undoEntry{move: m, unapply: unapply})
	b.caches = append(b.caches, nodeCache{})

	rule50 := b.states.top().Rule50 + 1
	if m.Piece == engine.Pawn || m.IsCapture() {
		rule50 = 0
	}
	b.states.push(b.b.Hash(), rule50)
}

func (b *Board) Undo(m engine.Move) {
	n := len(b.undo)
	if n == 0 || b.undo[n-1].move != m {
		panic(fmt.Sprintf("rules: undo of %s does not match the last applied move", m))
	}
	b.undo[n-1].unapply()
	b.undo = b.undo[:n-1]
	b.caches = b.caches[:len(b.caches)-1]
	b.states.pop()
}

// ParseMove finds the legal move written in UCI notation.
func (b *Board) ParseMove(uci string) (engine.Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	for _, m := range b.current().moves {
		if m.String() == uci {
			return m, nil
		}
	}
	return engine.NullMove, fmt.Errorf("%w: %q in %s", ErrIllegalMove, uci, b.FEN())
}

// PlayMoves applies a sequence of UCI moves, stopping at the first illegal one.
func (b *Board) PlayMoves(ucis ...string) error {
	for _, s := range ucis {
		m, err := b.ParseMove(s)
		if err != nil {
			return err
		}
		b.Apply(m)
	}
	return nil
}

func (b *Board) SideToMove() engine.Color {
	if b.b.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (b *Board) IsCheck() bool {
	return b.current().inCheck
}

func (b *Board) IsCheckmate() bool {
	c := b.current()
	return c.inCheck && len(c.moves) == 0
}

func (b *Board) IsStalemate() bool {
	c := b.current()
	return !c.inCheck && len(c.moves) == 0
}

// FiftyMoveCounter counts half-moves since the last capture or pawn move.
func (b *Board) FiftyMoveCounter() int {
	return b.states.top().Rule50
}

func (b *Board) IsDraw() bool {
	if b.IsCheckmate() {
		return false
	}
	return b.IsStalemate() ||
		b.states.isFiftyMoveDraw() ||
		b.states.isRepetition() ||
		isInsufficientMaterial(&b.b)
}

// IsGameOver reports whether the side to move can no longer play on.
func (b *Board) IsGameOver() bool {
	return b.IsCheckmate() || b.IsDraw()
}

// Result gives the PGN result string for the current position.
func (b *Board) Result() string {
	switch {
	case b.IsCheckmate() && b.SideToMove() == engine.White:
		return "0-1"
	case b.IsCheckmate():
		return "1-0"
	case b.IsDraw():
		return "1/2-1/2"
	}
	return "*"
}

func normalizeFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return "", fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	kings := map[rune]int{}
	for _, rank := range ranks {
		width := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				width += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				width++
				if ch == 'k' || ch == 'K' {
					kings[ch]++
				}
			default:
				return "", fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFEN, ch, rank)
			}
		}
		if width != 8 {
			return "", fmt.Errorf("%w: rank %q is %d squares wide", ErrInvalidFEN, rank, width)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return "", fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return "", fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	for len(fields) < 6 {
		if len(fields) == 4 {
			fields = append(fields, "0")
		} else {
			fields = append(fields, "1")
		}
	}
	return strings.Join(fields, " "), nil
}
