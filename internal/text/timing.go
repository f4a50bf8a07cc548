package text

// StepDuration returns the seconds each reveal step stays on screen.
// The step count is chars/skip (integer division) clamped to at least
// one, so zero-length text can never divide by zero.
func StepDuration(total float64, chars, skip int) float64 {
	if skip < 1 {
		skip = 1
	}
	steps := chars / skip
	if steps < 1 {
		steps = 1
	}
	return total / float64(steps)
}
