package testutil

import (
	"sync"

	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/loop"
)

// Recorder is a loop.Observer that keeps every publication in order.
// Hooks run after the publication is recorded; a hook error is returned to
// the engine.
type Recorder struct {
	mu       sync.Mutex
	steps    []annotate.Annotation
	outcomes []loop.Outcome

	// OnStepHook, if set, is called with the zero-based publication number.
	OnStepHook func(n int, a annotate.Annotation) error
	// OnCompleteHook, if set, is called for every outcome.
	OnCompleteHook func(o loop.Outcome) error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnStep implements loop.Observer.
func (r *Recorder) OnStep(a annotate.Annotation) error {
	r.mu.Lock()
	n := len(r.steps)
	r.steps = append(r.steps, a)
	hook := r.OnStepHook
	r.mu.Unlock()

	if hook != nil {
		return hook(n, a)
	}
	return nil
}

// OnComplete implements loop.Observer.
func (r *Recorder) OnComplete(o loop.Outcome) error {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	hook := r.OnCompleteHook
	r.mu.Unlock()

	if hook != nil {
		return hook(o)
	}
	return nil
}

// Steps returns a copy of the recorded annotations.
func (r *Recorder) Steps() []annotate.Annotation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]annotate.Annotation, len(r.steps))
	copy(out, r.steps)
	return out
}

// Outcomes returns a copy of the recorded outcomes.
func (r *Recorder) Outcomes() []loop.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]loop.Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// ActiveIndices returns the active index of every recorded annotation that
// has one, in publication order.
func (r *Recorder) ActiveIndices() []int {
	var out []int
	for _, a := range r.Steps() {
		if i, ok := a.Active(); ok {
			out = append(out, i)
		}
	}
	return out
}

// Calls returns the total number of observer callbacks received.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps) + len(r.outcomes)
}
