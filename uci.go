package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chessbot/config"
	"chessbot/engine"
	"chessbot/rules"
)

const defaultClock = 300 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// stdout belongs to the protocol
	log, err := cfg.Logs.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	uciLoop(os.Stdin, os.Stdout, cfg.EngineOptions(), log)
}

type goParams struct {
	wTime, bTime time.Duration
	depth        int
	infinite     bool
}

// parseGo reads the arguments of a "go" command. Unknown or malformed
// options are reported back as info strings and otherwise ignored.
func parseGo(tokens []string) (goParams, []string) {
	var params goParams
	var warnings []string

	msArg := func(i int, name string) (time.Duration, bool) {
		if i+1 >= len(tokens) {
			warnings = append(warnings, "Malformed go command option "+name)
			return 0, false
		}
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			warnings = append(warnings, "Malformed go command option; could not convert "+name)
			return 0, true
		}
		return time.Duration(v) * time.Millisecond, true
	}

	for i := 0; i < len(tokens); i++ {
		var consumed bool
		switch name := strings.ToLower(tokens[i]); name {
		case "infinite":
			params.infinite = true
		case "wtime":
			params.wTime, consumed = msArg(i, name)
		case "btime":
			params.bTime, consumed = msArg(i, name)
		case "winc", "binc":
			// increments do not change the depth policy
			_, consumed = msArg(i, name)
		case "depth":
			if i+1 >= len(tokens) {
				warnings = append(warnings, "Malformed go command option depth")
				break
			}
			consumed = true
			d, err := strconv.Atoi(tokens[i+1])
			if err != nil || d < 1 {
				warnings = append(warnings, "Malformed go command option; could not convert depth")
				break
			}
			params.depth = d
		default:
			warnings = append(warnings, "Unknown go subcommand "+name)
		}
		if consumed {
			i++
		}
	}
	return params, warnings
}

// clock builds the turn clock for the side to move. Missing times default to
// five minutes.
func (p goParams) clock(side engine.Color) engine.Clock {
	own, opp := p.wTime, p.bTime
	if side == engine.Black {
		own, opp = opp, own
	}
	if own <= 0 {
		own = defaultClock
	}
	if opp <= 0 {
		opp = defaultClock
	}
	return engine.NewTurnClock(own, opp)
}

type uciHost struct {
	out  io.Writer
	outM sync.Mutex
	opts engine.Options
	log  zerolog.Logger

	board     *rules.Board
	dumpStats bool

	cancel   context.CancelFunc
	done     chan struct{}
	infinite bool
}

func (h *uciHost) println(a ...any) {
	h.outM.Lock()
	defer h.outM.Unlock()
	fmt.Fprintln(h.out, a...)
}

func (h *uciHost) printf(format string, a ...any) {
	h.outM.Lock()
	defer h.outM.Unlock()
	fmt.Fprintf(h.out, format, a...)
}

func uciLoop(in io.Reader, out io.Writer, opts engine.Options, log zerolog.Logger) {
	h := &uciHost{out: out, opts: opts, log: log, board: rules.NewBoard()}
	defer h.settle()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			h.println("id name chessbot")
			h.println("id author chessbot")
			h.println("option name FixedDepth type spin default", opts.FixedDepth, "min 0 max", engine.MaxSearchDepth)
			h.println("option name AlphaBeta type check default", opts.AlphaBeta)
			h.println("uciok")
		case "isready":
			h.println("readyok")
		case "ucinewgame":
			h.stop()
			h.board = rules.NewBoard()
		case "position":
			h.stop()
			h.position(tokens[1:])
		case "go":
			h.stop()
			h.goSearch(tokens[1:])
		case "stop":
			h.stop()
		case "stats":
			h.dumpStats = !h.dumpStats
			h.println("info string stats", h.dumpStats)
		case "setoption":
			h.setOption(tokens[1:])
		case "d":
			h.settle()
			h.println("info string fen", h.board.FEN())
		case "quit":
			h.stop()
			return
		default:
			h.println("info string Unknown command:", line)
		}
	}
}

func (h *uciHost) position(tokens []string) {
	if len(tokens) == 0 {
		h.println("info string Malformed position command")
		return
	}

	var board *rules.Board
	var rest []string
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		board = rules.NewBoard()
		rest = tokens[1:]
	case "fen":
		i := 1
		for i < len(tokens) && strings.ToLower(tokens[i]) != "moves" {
			i++
		}
		var err error
		board, err = rules.ParseFEN(strings.Join(tokens[1:i], " "))
		if err != nil {
			h.println("info string Invalid fen position:", err)
			return
		}
		rest = tokens[i:]
	default:
		h.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, uci := range rest[1:] {
			if err := board.PlayMoves(strings.ToLower(uci)); err != nil {
				h.println("info string Move", uci, "not found for position", board.FEN())
				break
			}
		}
	}
	h.board = board
}

func (h *uciHost) setOption(tokens []string) {
	// setoption name <id> value <x>
	if len(tokens) < 4 || strings.ToLower(tokens[0]) != "name" || strings.ToLower(tokens[2]) != "value" {
		h.println("info string Malformed setoption command")
		return
	}
	switch strings.ToLower(tokens[1]) {
	case "fixeddepth":
		d, err := strconv.Atoi(tokens[3])
		if err != nil || d < 0 || d > engine.MaxSearchDepth {
			h.println("info string Invalid FixedDepth", tokens[3])
			return
		}
		h.opts.FixedDepth = d
	case "alphabeta":
		b, err := strconv.ParseBool(tokens[3])
		if err != nil {
			h.println("info string Invalid AlphaBeta", tokens[3])
			return
		}
		h.opts.AlphaBeta = b
	default:
		h.println("info string Unknown option", tokens[1])
	}
}

func (h *uciHost) goSearch(tokens []string) {
	params, warnings := parseGo(tokens)
	for _, w := range warnings {
		h.println("info string", w)
	}

	opts := h.opts
	if params.depth > 0 {
		opts.FixedDepth = engine.Clamp(params.depth, 1, engine.MaxSearchDepth)
	}
	eng := engine.New(opts, h.log)
	board := h.board
	clock := params.clock(board.SideToMove())
	dumpStats := h.dumpStats

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	h.cancel, h.done, h.infinite = cancel, done, params.infinite

	go func() {
		defer close(done)
		defer cancel()

		start := time.Now()
		result, err := eng.Think(ctx, board, clock)
		elapsed := time.Since(start)
		if err != nil && !errors.Is(err, engine.ErrSearchAborted) && !errors.Is(err, engine.ErrNoLegalMoves) {
			h.log.Error().Err(err).Str("fen", board.FEN()).Msg("search-failed")
		}
		if result.Move.IsNull() {
			h.println("bestmove 0000")
			return
		}

		nps := uint64(float64(result.Stats.Nodes) / max(elapsed.Seconds(), 1e-3))
		h.printf("info depth %d score %s nodes %d time %d nps %d pv %s\n",
			result.Depth, engine.FormatScore(result.Score), result.Stats.Nodes,
			elapsed.Milliseconds(), nps, result.Move)
		if dumpStats {
			h.outM.Lock()
			engine.DumpStats(h.out, result.Stats)
			h.outM.Unlock()
		}
		if params.infinite {
			// bestmove waits for stop or quit
			<-ctx.Done()
		}
		h.println("bestmove", result.Move)
	}()
}

// stop cancels a running search and waits for its bestmove.
func (h *uciHost) stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wait()
}

func (h *uciHost) wait() {
	if h.done != nil {
		<-h.done
	}
	h.cancel, h.done, h.infinite = nil, nil, false
}

// settle lets a bounded search finish and stops an infinite one.
func (h *uciHost) settle() {
	if h.infinite {
		h.stop()
		return
	}
	h.wait()
}
