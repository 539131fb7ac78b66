package loop

import "github.com/thruflo/stepviz/internal/annotate"

// StepsFor returns the number of accumulator updates a completed run over a
// sequence of length n applies.
func StepsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}

// CalculateProgress derives the step counter from a published annotation.
// While index i is active, i-1 updates have been applied and the update for
// i is pending; a complete annotation means every update was applied.
func CalculateProgress(a annotate.Annotation) (completed, total int) {
	total = StepsFor(len(a))
	if a.IsComplete() {
		return total, total
	}
	if i, ok := a.Active(); ok && i > 0 {
		return i - 1, total
	}
	return 0, total
}
