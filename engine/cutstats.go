package engine

import (
	"fmt"
	"io"
)

// Stats collects counters for one search call.
type Stats struct {
	Nodes       uint64 // positions expanded
	Evaluations uint64 // evaluator calls
	BetaCutoffs uint64
	MateCutoffs uint64 // siblings skipped after an immediate mate
}

// DumpStats prints the counters as UCI info strings.
func DumpStats(w io.Writer, s Stats) {
	fmt.Fprintln(w, "info string Search statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "info string   Evaluations: %d\n", s.Evaluations)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	fmt.Fprintf(w, "info string   Mate cutoffs: %d\n", s.MateCutoffs)
}
