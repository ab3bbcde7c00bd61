package engine

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore int32 = 1_000_000
	// MatePly separates mates by distance; it is larger than any sum of move
	// deltas a line can collect, so a quicker mate always scores higher.
	MatePly       int32 = 10_000
	MateThreshold int32 = MaxScore - MatePly*(MaxSearchDepth+2)
	Infinity      int32 = 2 * MaxScore
)

var (
	ErrNoLegalMoves  = errors.New("no legal moves")
	ErrSearchAborted = errors.New("search aborted")
)

// MateScore is the score of delivering mate with the move played at ply
// (the root's moves are ply 1).
func MateScore(ply int) int32 {
	return MaxScore - int32(ply)*MatePly
}

func IsMateScore(score int32) bool {
	return abs(score) >= MateThreshold
}

type SearchResult struct {
	Move  Move
	Score int32
	Depth int
	Stats Stats
}

// Searcher walks the move tree depth first, applying and undoing moves on the
// caller's Position. It is not safe for concurrent use.
type Searcher struct {
	Evaluator Evaluator
	// AlphaBeta enables window pruning. It changes how many nodes are
	// visited, never the move or score returned.
	AlphaBeta bool

	ctx   context.Context
	stats Stats
}

func NewSearcher(evaluator Evaluator, alphaBeta bool) *Searcher {
	return &Searcher{Evaluator: evaluator, AlphaBeta: alphaBeta}
}

// Search returns the best move for the side to move in pos together with its
// score from that side's perspective. Depth 0 scores each legal move by its
// own delta; every extra level folds in the opponent's best reply.
//
// If ctx is cancelled the best fully searched root move so far is returned
// along with an error wrapping ErrSearchAborted.
func (s *Searcher) Search(ctx context.Context, pos Position, depth int) (SearchResult, error) {
	if depth < 0 {
		return SearchResult{}, fmt.Errorf("invalid search depth %d", depth)
	}

	s.ctx = ctx
	s.stats = Stats{}
	defer func() { s.ctx = nil }()

	bestMove, bestScore, err := s.negamax(pos, depth, 0, -Infinity, Infinity)
	result := SearchResult{
		Move:  bestMove,
		Score: bestScore,
		Depth: depth,
		Stats: s.stats,
	}
	if bestMove.IsNull() {
		result.Score = 0
	}
	return result, err
}

func (s *Searcher) Stats() Stats {
	return s.stats
}

func (s *Searcher) checkStop() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	return nil
}

func (s *Searcher) negamax(pos Position, depth int, ply int, alpha int32, beta int32) (Move, int32, error) {
	s.stats.Nodes++

	if s.stats.Nodes&1023 == 0 {
		if err := s.checkStop(); err != nil {
			return NullMove, 0, err
		}
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return NullMove, 0, ErrNoLegalMoves
	}

	var isRoot = ply == 0
	var mover = pos.SideToMove()
	var bestMove = NullMove
	var bestScore = -Infinity

	ordered := OrderMoves(moves)
	for index, move := range ordered {
		if isRoot {
			if err := s.checkStop(); err != nil {
				return bestMove, bestScore, err
			}
		}

		score, mated, err := s.searchMove(pos, move, mover, depth, ply+1, alpha, beta)
		if err != nil {
			return bestMove, bestScore, err
		}

		// Strictly greater: ties keep the earlier move.
		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if mated {
			s.stats.MateCutoffs += uint64(len(ordered) - index - 1)
			break
		}

		if s.AlphaBeta {
			if bestScore > alpha {
				alpha = bestScore
			}
			if alpha >= beta {
				s.stats.BetaCutoffs++
				break
			}
		}
	}

	return bestMove, bestScore, nil
}

// searchMove plays m, scores it and takes it back. The undo is deferred so a
// panicking evaluator cannot leave the position advanced.
func (s *Searcher) searchMove(pos Position, m Move, mover Color, depth int, ply int, alpha int32, beta int32) (score int32, mated bool, err error) {
	pos.Apply(m)
	defer pos.Undo(m)

	if pos.IsCheckmate() {
		return MateScore(ply), true, nil
	}

	s.stats.Evaluations++
	score = s.Evaluator.EvaluateMove(pos, m, mover)

	if depth == 0 || pos.IsDraw() {
		return score, false, nil
	}

	// The reply is scored from the opponent's side; our window shifts by the
	// delta we already banked.
	_, reply, err := s.negamax(pos, depth-1, ply, score-beta, score-alpha)
	if err != nil {
		return 0, false, err
	}
	return score - reply, false, nil
}
