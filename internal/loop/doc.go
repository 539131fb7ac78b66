// Package loop provides the stepping engine that drives a single-pass scan
// over a sequence one index at a time.
//
// A run publishes a full annotation to its Observer before the first step,
// once per step with the current index active, and once more with every
// element done. Between a step's publication and its accumulator update the
// engine suspends for the configured delay. Cancellation is cooperative: the
// run's context is checked at the top of every iteration, during every
// suspension and once more before the terminal publication. A cancelled run
// reports ExitReasonCancelled and never produces a Result.
//
// The engine does not coordinate concurrent runs. Callers that restart a scan
// must cancel the previous run and wait for Run to return before starting the
// next one, otherwise two runs publish to the same observer.
//
// Helper functions for progress tracking (StepsFor, CalculateProgress) are
// exported for the presentation layer.
package loop
