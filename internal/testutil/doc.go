// Package testutil provides shared test utilities for stepviz.
//
// # Fixtures
//
//   - SampleSequence(), AllNegativeSequence(), RandomSequence(seed, n, limit)
//   - SampleHeapValues() - the default min-heap content
//   - BruteForceMaxSubarray(seq) - O(n²) oracle for Kadane results
//
// # Observers
//
//   - Recorder - a loop.Observer that records every annotation and outcome,
//     with optional hooks to cancel or fail a run at a chosen publication
//
// # Assertions
//
//   - AssertCompletedRun(t, rec, n), AssertCancelledRun(t, rec, lastActive)
//   - AssertMinHeap(t, values)
//
// # Contexts
//
//   - RunContext(t), ContextWithTimeout(t, d), ContextWithTestDeadline(t, d)
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.RunContext(t)
//	    defer cancel()
//	    rec := testutil.NewRecorder()
//	    _, err := engine.Run(ctx, scan.Kadane{}, testutil.SampleSequence(), rec)
//	    require.NoError(t, err)
//	    testutil.AssertCompletedRun(t, rec, 6)
//	}
package testutil
