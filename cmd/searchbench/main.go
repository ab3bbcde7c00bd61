package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chessbot/engine"
	"chessbot/rules"
)

func main() {
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	fullWidth := flag.Bool("fullwidth", false, "disable alpha-beta pruning")
	stats := flag.Bool("stats", false, "print search counters after each run")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag < 0 || *depthFlag > engine.MaxSearchDepth {
		log.Fatalf("depth must be in 0..%d, got %d", engine.MaxSearchDepth, *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := rules.Startpos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	depth := *depthFlag
	repeat := *repeatFlag

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d alphabeta=%v\n", fen, depth, repeat, !*fullWidth)

	searcher := engine.NewSearcher(engine.NewMoveEvaluator(), !*fullWidth)
	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < repeat; i++ {
		// Fresh position for each run
		board, err := rules.ParseFEN(fen)
		if err != nil {
			log.Fatalf("bad fen: %v", err)
		}

		iterStart := time.Now()
		result, err := searcher.Search(context.Background(), board, depth)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		iterElapsed := time.Since(iterStart)
		totalNodes += result.Stats.Nodes

		fmt.Printf("iteration %d: bestmove %v score %s nodes %d time=%v\n",
			i+1, result.Move, engine.FormatScore(result.Score), result.Stats.Nodes, iterElapsed)
		if *stats {
			engine.DumpStats(os.Stdout, result.Stats)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
