package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/loop"
)

func TestBruteForceMaxSubarray(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want int
	}{
		{"sample", SampleSequence(), SampleSequenceMaxSum},
		{"all negative", AllNegativeSequence(), -2},
		{"single", []int{5}, 5},
		{"whole range", []int{1, 2, 3}, 6},
		{"split by dip", []int{5, -9, 6}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BruteForceMaxSubarray(tt.seq))
		})
	}
}

func TestRandomSequence_Reproducible(t *testing.T) {
	a := RandomSequence(7, 20, 10)
	b := RandomSequence(7, 20, 10)
	assert.Equal(t, a, b)
	require.Len(t, a, 20)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, -10)
		assert.LessOrEqual(t, v, 10)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	seq := []int{1, 2, 3}

	require.NoError(t, rec.OnStep(annotate.Blank(seq)))
	require.NoError(t, rec.OnStep(annotate.Project(seq, 1)))
	require.NoError(t, rec.OnStep(annotate.Project(seq, 2)))
	require.NoError(t, rec.OnStep(annotate.Complete(seq)))
	require.NoError(t, rec.OnComplete(loop.Outcome{Reason: loop.ExitReasonDone, Result: &loop.Result{Value: 6}}))

	assert.Equal(t, []int{1, 2}, rec.ActiveIndices())
	assert.Equal(t, 5, rec.Calls())
	AssertCompletedRun(t, rec, 3)
}

func TestRecorder_Hooks(t *testing.T) {
	boom := errors.New("boom")
	rec := NewRecorder()
	rec.OnStepHook = func(n int, _ annotate.Annotation) error {
		if n == 1 {
			return boom
		}
		return nil
	}
	rec.OnCompleteHook = func(loop.Outcome) error { return boom }

	seq := []int{1, 2}
	assert.NoError(t, rec.OnStep(annotate.Blank(seq)))
	assert.ErrorIs(t, rec.OnStep(annotate.Project(seq, 1)), boom)
	assert.ErrorIs(t, rec.OnComplete(loop.Outcome{Reason: loop.ExitReasonCancelled}), boom)

	assert.Len(t, rec.Steps(), 2)
	AssertCancelledRun(t, rec, 1)
}

func TestAssertMinHeap(t *testing.T) {
	AssertMinHeap(t, SampleHeapValues())
	AssertMinHeap(t, nil)
	AssertMinHeap(t, []int{1})
}
