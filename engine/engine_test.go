package engine_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chessbot/engine"
	"chessbot/rules"
)

func TestEngineDepthFor(t *testing.T) {
	e := engine.New(engine.DefaultOptions(), zerolog.Nop())
	cases := []struct {
		own, opp time.Duration
		want     int
	}{
		{3 * time.Second, time.Minute, 3},
		{30 * time.Second, 45 * time.Second, 4},
		{30 * time.Second, 15 * time.Second, 5},
		{5 * time.Minute, 10 * time.Minute, 5},
	}
	for _, c := range cases {
		if got := e.DepthFor(engine.NewTurnClock(c.own, c.opp)); got != c.want {
			t.Fatalf("DepthFor(%v, %v) = %d, want %d", c.own, c.opp, got, c.want)
		}
	}

	opts := engine.DefaultOptions()
	opts.FixedDepth = 2
	fixed := engine.New(opts, zerolog.Nop())
	if got := fixed.DepthFor(engine.NewTurnClock(time.Second, time.Hour)); got != 2 {
		t.Fatalf("fixed depth = %d, want 2", got)
	}
	opts.FixedDepth = 42
	if got := engine.New(opts, zerolog.Nop()).DepthFor(engine.NewTurnClock(0, 0)); got != engine.MaxSearchDepth {
		t.Fatalf("fixed depth not clamped: %d", got)
	}
}

func TestEngineThink(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs).Level(zerolog.DebugLevel)

	opts := engine.DefaultOptions()
	opts.FixedDepth = 1
	e := engine.New(opts, log)

	board := mustBoard(t, foolsMateSetup)
	res, err := e.Think(context.Background(), board, engine.NewTurnClock(time.Minute, time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "d8h4" || res.Depth != 1 {
		t.Fatalf("Think = %v at depth %d", res.Move, res.Depth)
	}
	if res.Stats.Nodes == 0 {
		t.Fatalf("no nodes counted")
	}
	if !strings.Contains(logs.String(), `"message":"search-done"`) {
		t.Fatalf("missing search-done log: %s", logs.String())
	}
}

func TestEngineChooseMove(t *testing.T) {
	opts := engine.DefaultOptions()
	opts.FixedDepth = 2
	e := engine.New(opts, zerolog.Nop())
	clock := engine.NewTurnClock(time.Minute, time.Minute)

	board := rules.NewBoard()
	m, err := e.ChooseMove(context.Background(), board, clock)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := board.ParseMove(m.String()); err != nil {
		t.Fatalf("chosen move %v is not legal: %v", m, err)
	}

	_, err = e.ChooseMove(context.Background(), mustBoard(t, stalemate), clock)
	if !errors.Is(err, engine.ErrNoLegalMoves) {
		t.Fatalf("stalemate: err = %v", err)
	}
}

func TestEngineThinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := engine.New(engine.DefaultOptions(), zerolog.Nop())
	_, err := e.Think(ctx, rules.NewBoard(), engine.NewTurnClock(time.Minute, time.Minute))
	if !errors.Is(err, engine.ErrSearchAborted) {
		t.Fatalf("err = %v, want ErrSearchAborted", err)
	}
}

func TestEngineOptionsReachEvaluator(t *testing.T) {
	// With a large draw score the bot should head for the repetition.
	board := rules.NewBoard()
	if err := board.PlayMoves("g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1"); err != nil {
		t.Fatal(err)
	}

	opts := engine.DefaultOptions()
	opts.FixedDepth = 1
	opts.DrawScore = 5000
	e := engine.New(opts, zerolog.Nop())
	res, err := e.Think(context.Background(), board, engine.NewTurnClock(time.Minute, time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "f6g8" {
		t.Fatalf("move %v, want the repeating f6g8", res.Move)
	}
}
