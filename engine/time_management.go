package engine

import "time"

// MaxSearchDepth bounds any depth handed to the search.
const MaxSearchDepth = 8

// DepthPolicy picks a search depth once per turn from the clocks. The depth
// is not revisited while the search runs.
type DepthPolicy struct {
	PanicTime   time.Duration // below this we search shallow
	AheadTime   time.Duration // above this, and ahead of the opponent, we search deep
	RelaxedTime time.Duration // above this we always search deep

	Shallow int
	Normal  int
	Deep    int
}

/*
	< 5 seconds                                   --> 3
	> 60 seconds, or > 20 seconds and ahead on time --> 5
	else                                          --> 4
*/
func DefaultDepthPolicy() DepthPolicy {
	return DepthPolicy{
		PanicTime:   5 * time.Second,
		AheadTime:   20 * time.Second,
		RelaxedTime: 60 * time.Second,
		Shallow:     3,
		Normal:      4,
		Deep:        5,
	}
}

func (p DepthPolicy) DepthFor(remaining, opponentRemaining time.Duration) int {
	var depth int
	switch {
	case remaining < p.PanicTime:
		depth = p.Shallow
	case remaining > p.RelaxedTime || (remaining > p.AheadTime && remaining > opponentRemaining):
		depth = p.Deep
	default:
		depth = p.Normal
	}
	return Clamp(depth, 0, MaxSearchDepth)
}

// TurnClock is a Clock snapshot taken when the host starts a turn.
type TurnClock struct {
	remaining         time.Duration
	opponentRemaining time.Duration
	started           time.Time
}

func NewTurnClock(remaining, opponentRemaining time.Duration) *TurnClock {
	return &TurnClock{
		remaining:         remaining,
		opponentRemaining: opponentRemaining,
		started:           time.Now(),
	}
}

func (c *TurnClock) Remaining() time.Duration         { return c.remaining }
func (c *TurnClock) OpponentRemaining() time.Duration { return c.opponentRemaining }
func (c *TurnClock) ElapsedThisTurn() time.Duration   { return time.Since(c.started) }
