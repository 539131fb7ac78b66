package loop

import (
	"errors"
	"fmt"
	"time"

	"github.com/thruflo/stepviz/internal/annotate"
)

var (
	// ErrEmptySequence is returned by Run when the sequence has no elements.
	ErrEmptySequence = errors.New("loop: sequence is empty")

	// ErrNilAlgorithm is returned by Run when no algorithm is supplied.
	ErrNilAlgorithm = errors.New("loop: algorithm is nil")
)

// ExitReason indicates why a run stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonDone                 // Every index was stepped
	ExitReasonCancelled            // The run's context was cancelled
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonDone:
		return "completed"
	case ExitReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Accumulator is the running state of a single-pass algorithm.
type Accumulator interface {
	// Update folds the element at index into the state.
	Update(index, value int)
	// Value returns the algorithm's current scalar output.
	Value() int
}

// Algorithm supplies the initialisation of a single-pass scan. The engine
// calls Start with element 0 and then Update for indices 1..n-1.
type Algorithm interface {
	Name() string
	Start(first int) Accumulator
}

// Result is produced once, only when a run completes without cancellation.
type Result struct {
	RunID     string
	Algorithm string
	Value     int
	Steps     int
	Elapsed   time.Duration

	// Accumulator is the final algorithm state, for callers that want more
	// than the scalar value.
	Accumulator Accumulator
}

// Outcome is handed to Observer.OnComplete exactly once per run.
type Outcome struct {
	Reason ExitReason
	RunID  string
	Steps  int     // Accumulator updates applied before the run stopped
	Result *Result // nil unless Reason is ExitReasonDone
}

// Cancelled reports whether the run stopped because it was cancelled.
func (o Outcome) Cancelled() bool {
	return o.Reason == ExitReasonCancelled
}

// Observer receives everything a run publishes. Calls for one run are made
// from the goroutine that called Run, in order.
type Observer interface {
	OnStep(a annotate.Annotation) error
	OnComplete(o Outcome) error
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are no-ops.
type ObserverFuncs struct {
	Step     func(a annotate.Annotation) error
	Complete func(o Outcome) error
}

// OnStep calls f.Step.
func (f ObserverFuncs) OnStep(a annotate.Annotation) error {
	if f.Step == nil {
		return nil
	}
	return f.Step(a)
}

// OnComplete calls f.Complete.
func (f ObserverFuncs) OnComplete(o Outcome) error {
	if f.Complete == nil {
		return nil
	}
	return f.Complete(o)
}

// Observer stages reported in ObserverError.
const (
	StageStep     = "step"
	StageComplete = "complete"
)

// ObserverError wraps a failure returned by an Observer callback.
type ObserverError struct {
	Stage string
	Index int // Active index for step failures, -1 otherwise
	Err   error
}

func (e *ObserverError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("observer %s failed at index %d: %v", e.Stage, e.Index, e.Err)
	}
	return fmt.Sprintf("observer %s failed: %v", e.Stage, e.Err)
}

func (e *ObserverError) Unwrap() error {
	return e.Err
}
