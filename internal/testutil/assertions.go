package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/loop"
)

// AssertCompletedRun asserts that rec saw a full, uncancelled run over a
// sequence of length n: a blank annotation, active indices 1..n-1 in order,
// a complete annotation and a single successful outcome.
func AssertCompletedRun(t *testing.T, rec *Recorder, n int) {
	t.Helper()

	steps := rec.Steps()
	require.Len(t, steps, n+1, "publication count mismatch")

	assert.Equal(t, n, steps[0].Count(annotate.TagUnvisited), "first publication should be blank")
	for i := 1; i < n; i++ {
		idx, ok := steps[i].Active()
		assert.True(t, ok, "publication %d should have an active index", i)
		assert.Equal(t, i, idx, "publication %d active index mismatch", i)
		assert.Len(t, steps[i], n)
	}
	assert.True(t, steps[n].IsComplete(), "last publication should be complete")

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 1, "outcome count mismatch")
	assert.Equal(t, loop.ExitReasonDone, outcomes[0].Reason)
	require.NotNil(t, outcomes[0].Result)
}

// AssertCancelledRun asserts that rec saw a cancelled run whose last active
// index was lastActive, with no terminal annotation and no result.
func AssertCancelledRun(t *testing.T, rec *Recorder, lastActive int) {
	t.Helper()

	for _, a := range rec.Steps() {
		assert.False(t, a.IsComplete(), "cancelled run published a complete annotation")
	}

	active := rec.ActiveIndices()
	if lastActive <= 0 {
		assert.Empty(t, active)
	} else {
		require.NotEmpty(t, active)
		assert.Equal(t, lastActive, active[len(active)-1], "last active index mismatch")
	}

	outcomes := rec.Outcomes()
	require.Len(t, outcomes, 1, "outcome count mismatch")
	assert.True(t, outcomes[0].Cancelled())
	assert.Nil(t, outcomes[0].Result)
}

// AssertMinHeap asserts that values satisfy the min-heap property.
func AssertMinHeap(t *testing.T, values []int) {
	t.Helper()
	for i := range values {
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if child < len(values) {
				assert.LessOrEqual(t, values[i], values[child],
					"heap property violated between [%d]=%d and [%d]=%d", i, values[i], child, values[child])
			}
		}
	}
}
