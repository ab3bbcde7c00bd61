// Package record keeps a human-readable log of a game: SAN for each move and
// a PGN export. It does not take part in the search.
package record

import (
	"fmt"

	"github.com/notnil/chess"
)

type Game struct {
	g    *chess.Game
	sans []string
}

// New starts a record at fen; an empty fen means the standard start.
func New(fen string) (*Game, error) {
	if fen == "" {
		return &Game{g: chess.NewGame()}, nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return &Game{g: chess.NewGame(opt)}, nil
}

// Push records a move given in UCI notation and returns its SAN.
func (r *Game) Push(uci string) (string, error) {
	pos := r.g.Position()
	m, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return "", fmt.Errorf("record: decode %q: %w", uci, err)
	}
	// The generated move carries the check and capture tags SAN needs.
	var valid *chess.Move
	for _, v := range pos.ValidMoves() {
		if v.S1() == m.S1() && v.S2() == m.S2() && v.Promo() == m.Promo() {
			valid = v
			break
		}
	}
	if valid == nil {
		return "", fmt.Errorf("record: %q is not legal in %s", uci, pos)
	}
	san := chess.AlgebraicNotation{}.Encode(pos, valid)
	if err := r.g.Move(valid); err != nil {
		return "", fmt.Errorf("record: play %q: %w", uci, err)
	}
	r.sans = append(r.sans, san)
	return san, nil
}

func (r *Game) SetTag(key, value string) {
	r.g.AddTagPair(key, value)
}

// SANs lists every recorded move in SAN.
func (r *Game) SANs() []string {
	out := make([]string, len(r.sans))
	copy(out, r.sans)
	return out
}

// Finish closes a game the record has not recognised as over on its own:
// threefold and fifty-move draws need a claim, and a loss on time is
// recorded as a resignation.
func (r *Game) Finish(result string) error {
	if r.g.Outcome() != chess.NoOutcome {
		return nil
	}
	switch result {
	case "1/2-1/2":
		return r.g.Draw(chess.DrawOffer)
	case "1-0":
		r.g.Resign(chess.Black)
	case "0-1":
		r.g.Resign(chess.White)
	case "*":
	default:
		return fmt.Errorf("record: unknown result %q", result)
	}
	return nil
}

// Outcome is the PGN result token: "1-0", "0-1", "1/2-1/2" or "*".
func (r *Game) Outcome() string {
	return string(r.g.Outcome())
}

func (r *Game) PGN() string {
	return r.g.String()
}
