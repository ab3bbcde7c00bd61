package rules

const fiftyMoveLimit = 100

// State captures the information we need to reason about repetitions and draws.
type State struct {
	Hash   uint64
	Rule50 int
}

// stateStack has one entry per position reached, the current one last.
type stateStack []State

func (s *stateStack) reset(hash uint64, rule50 int) {
	*s = append((*s)[:0], State{Hash: hash, Rule50: rule50})
}

func (s *stateStack) push(hash uint64, rule50 int) {
	*s = append(*s, State{Hash: hash, Rule50: rule50})
}

func (s *stateStack) pop() {
	if len(*s) <= 1 {
		return
	}
	*s = (*s)[:len(*s)-1]
}

func (s stateStack) top() State {
	return s[len(s)-1]
}

func (s stateStack) isFiftyMoveDraw() bool {
	return s.top().Rule50 >= fiftyMoveLimit
}

// isRepetition reports a threefold repetition of the current position. Only
// positions since the last irreversible move can match.
func (s stateStack) isRepetition() bool {
	return s.repetitionCount() >= 2
}

func (s stateStack) repetitionCount() (count int) {
	if len(s) <= 1 {
		return 0
	}
	curr := s.top()
	start := len(s) - 1 - curr.Rule50
	if start < 0 {
		start = 0
	}
	for i := len(s) - 3; i >= start; i -= 2 {
		if s[i].Hash == curr.Hash {
			count++
		}
	}
	return count
}
