package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chessbot/config"
	"chessbot/engine"
	"chessbot/record"
	"chessbot/rules"
)

type gameResult struct {
	pgn    string
	result string
	plies  int
}

func main() {
	games := flag.Int("games", 1, "number of games to play")
	parallel := flag.Int("parallel", 2, "games played at once")
	fen := flag.String("fen", "", "start position (empty = startpos)")
	clockFlag := flag.Duration("clock", 2*time.Minute, "time per side")
	maxMoves := flag.Int("maxmoves", 200, "adjudicate a draw after this many plies")
	out := flag.String("out", "", "write PGN to file (default stdout)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := cfg.Logs.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts := cfg.EngineOptions()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]gameResult, *games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*parallel, 1))
	for i := range results {
		i := i
		g.Go(func() error {
			gameLog := log.With().Int("game", i+1).Logger()
			res, err := playGame(gctx, opts, gameLog, *fen, *clockFlag, *maxMoves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			res.pgn = strings.TrimSpace(res.pgn)
			results[i] = res
			gameLog.Info().Str("result", res.result).Int("plies", res.plies).Msg("game-over")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("selfplay-failed")
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("create pgn file")
		}
		defer f.Close()
		w = f
	}

	score := map[string]int{}
	for i, res := range results {
		score[res.result]++
		fmt.Fprintf(w, "[Event \"selfplay\"]\n[Round \"%d\"]\n%s\n\n", i+1, res.pgn)
	}
	log.Info().
		Int("white_wins", score["1-0"]).
		Int("black_wins", score["0-1"]).
		Int("draws", score["1/2-1/2"]).
		Msg("selfplay-done")
}

// playGame plays the engine against itself with one clock per side. Time a
// side spends thinking is charged to its clock; a flag fall loses the game.
func playGame(ctx context.Context, opts engine.Options, log zerolog.Logger, fen string, perSide time.Duration, maxPlies int) (gameResult, error) {
	var board *rules.Board
	if fen == "" {
		board = rules.NewBoard()
	} else {
		var err error
		if board, err = rules.ParseFEN(fen); err != nil {
			return gameResult{}, err
		}
		fen = board.FEN()
	}
	rec, err := record.New(fen)
	if err != nil {
		return gameResult{}, err
	}

	players := [2]*engine.Engine{engine.New(opts, log), engine.New(opts, log)}
	clocks := [2]time.Duration{perSide, perSide}

	result := "*"
	plies := 0
	for ; plies < maxPlies; plies++ {
		if board.IsGameOver() {
			result = board.Result()
			break
		}

		side := board.SideToMove()
		clock := engine.NewTurnClock(clocks[side], clocks[side.Other()])
		move, err := players[side].ChooseMove(ctx, board, clock)
		if err != nil {
			return gameResult{}, err
		}
		clocks[side] -= clock.ElapsedThisTurn()
		if clocks[side] <= 0 {
			log.Info().Str("side", side.String()).Msg("flag-fall")
			result = "1-0"
			if side == engine.White {
				result = "0-1"
			}
			break
		}

		if _, err := rec.Push(move.String()); err != nil {
			return gameResult{}, err
		}
		board.Apply(move)
		log.Debug().Int("ply", plies+1).Str("move", move.String()).Msg("move")
	}
	if result == "*" && board.IsGameOver() {
		result = board.Result()
	}
	if result == "*" {
		// ply cap reached
		result = "1/2-1/2"
	}

	if err := rec.Finish(result); err != nil {
		return gameResult{}, err
	}
	return gameResult{pgn: rec.PGN(), result: rec.Outcome(), plies: plies}, nil
}
