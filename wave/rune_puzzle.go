package wave

// PressResult is the outcome of touching a rune.
type PressResult int

const (
	PressIgnored PressResult = iota
	PressCorrect
	PressWrong
	PressSolved
)

// RunePuzzle is a sequence lock: runes must be touched in order. A wrong
// rune resets progress, except that it counts as the first step when it is
// the sequence's opening rune.
type RunePuzzle struct {
	sequence []int
	progress int
	solved   bool
	mistakes int
}

func NewRunePuzzle(sequence []int) *RunePuzzle {
	return &RunePuzzle{sequence: append([]int(nil), sequence...)}
}

func (p *RunePuzzle) Press(rune int) PressResult {
	if p == nil || p.solved || len(p.sequence) == 0 {
		return PressIgnored
	}
	if p.sequence[p.progress] == rune {
		p.progress++
		if p.progress == len(p.sequence) {
			p.solved = true
			return PressSolved
		}
		return PressCorrect
	}
	p.mistakes++
	p.progress = 0
	if p.sequence[0] == rune {
		p.progress = 1
	}
	return PressWrong
}

func (p *RunePuzzle) Solved() bool {
	return p != nil && p.solved
}

func (p *RunePuzzle) Progress() int {
	if p == nil {
		return 0
	}
	return p.progress
}

func (p *RunePuzzle) Mistakes() int {
	if p == nil {
		return 0
	}
	return p.mistakes
}

func (p *RunePuzzle) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sequence)
}
