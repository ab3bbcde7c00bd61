package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Options configures an Engine. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// FixedDepth, when positive, replaces the clock-driven depth policy.
	FixedDepth int
	AlphaBeta  bool
	DrawScore  int32
	CheckBonus int32
	Policy     DepthPolicy
}

func DefaultOptions() Options {
	return Options{
		AlphaBeta:  true,
		DrawScore:  DefaultDrawScore,
		CheckBonus: DefaultCheckBonus,
		Policy:     DefaultDepthPolicy(),
	}
}

// Engine is what a host asks for a move each turn.
type Engine struct {
	policy     DepthPolicy
	fixedDepth int
	searcher   *Searcher
	log        zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Engine {
	evaluator := NewMoveEvaluator()
	evaluator.DrawScore = opts.DrawScore
	evaluator.CheckBonus = opts.CheckBonus

	return &Engine{
		policy:     opts.Policy,
		fixedDepth: opts.FixedDepth,
		searcher:   NewSearcher(evaluator, opts.AlphaBeta),
		log:        log,
	}
}

// DepthFor picks the depth for this turn.
func (e *Engine) DepthFor(clock Clock) int {
	if e.fixedDepth > 0 {
		return Clamp(e.fixedDepth, 1, MaxSearchDepth)
	}
	return e.policy.DepthFor(clock.Remaining(), clock.OpponentRemaining())
}

// Think searches pos and returns the full result. A search cut short by ctx
// still yields a move when at least one root move finished.
func (e *Engine) Think(ctx context.Context, pos Position, clock Clock) (SearchResult, error) {
	depth := e.DepthFor(clock)

	result, err := e.searcher.Search(ctx, pos, depth)
	if err != nil {
		if errors.Is(err, ErrSearchAborted) && !result.Move.IsNull() {
			e.log.Warn().Err(err).
				Str("move", result.Move.String()).
				Int("depth", depth).
				Msg("search-aborted")
			return result, nil
		}
		return result, err
	}

	elapsed := clock.ElapsedThisTurn()
	e.log.Debug().
		Int("depth", depth).
		Uint64("nodes", result.Stats.Nodes).
		Uint64("evaluations", result.Stats.Evaluations).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Float64("evals_per_ms", perMillisecond(result.Stats.Evaluations, elapsed.Milliseconds())).
		Str("score", FormatScore(result.Score)).
		Str("move", result.Move.String()).
		Msg("search-done")

	return result, nil
}

// ChooseMove is Think without the diagnostics.
func (e *Engine) ChooseMove(ctx context.Context, pos Position, clock Clock) (Move, error) {
	result, err := e.Think(ctx, pos, clock)
	if err != nil {
		return NullMove, err
	}
	return result.Move, nil
}
