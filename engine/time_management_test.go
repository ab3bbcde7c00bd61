package engine

import (
	"testing"
	"time"
)

func TestDepthPolicy(t *testing.T) {
	policy := DefaultDepthPolicy()

	tests := []struct {
		remaining, opponent time.Duration
		want                int
	}{
		{4 * time.Second, 100 * time.Second, 3},
		{4999 * time.Millisecond, time.Second, 3},
		{5 * time.Second, time.Second, 4},
		{15 * time.Second, time.Second, 4},
		{30 * time.Second, 40 * time.Second, 4},
		{30 * time.Second, 30 * time.Second, 4},
		{30 * time.Second, 10 * time.Second, 5},
		{60 * time.Second, 90 * time.Second, 4},
		{61 * time.Second, 90 * time.Second, 5},
		{10 * time.Minute, 10 * time.Minute, 5},
	}
	for _, tt := range tests {
		if got := policy.DepthFor(tt.remaining, tt.opponent); got != tt.want {
			t.Fatalf("DepthFor(%v, %v) = %d, want %d", tt.remaining, tt.opponent, got, tt.want)
		}
	}
}

func TestDepthPolicyClamped(t *testing.T) {
	policy := DepthPolicy{Shallow: -1, Normal: 2, Deep: 99, PanicTime: time.Second, AheadTime: time.Minute, RelaxedTime: time.Hour}
	if got := policy.DepthFor(0, 0); got != 0 {
		t.Fatalf("shallow clamp = %d", got)
	}
	if got := policy.DepthFor(2*time.Hour, 0); got != MaxSearchDepth {
		t.Fatalf("deep clamp = %d", got)
	}
}

func TestTurnClock(t *testing.T) {
	c := NewTurnClock(time.Minute, 2*time.Minute)
	if c.Remaining() != time.Minute || c.OpponentRemaining() != 2*time.Minute {
		t.Fatalf("clock = %v/%v", c.Remaining(), c.OpponentRemaining())
	}
	if c.ElapsedThisTurn() < 0 {
		t.Fatalf("negative elapsed")
	}
}
