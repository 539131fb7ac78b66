package loop

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/logging"
)

// SleepFunc suspends for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options holds configuration for creating an Engine.
type Options struct {
	Delay  time.Duration   // Pause between a step's publication and its update; negative means 0
	Logger *logging.Logger // Optional: defaults to the package logger
	Sleep  SleepFunc       // Optional: for deterministic tests
	Now    func() time.Time
	NewID  func() string
}

// Engine runs stepped algorithms. An Engine holds no per-run state and may
// be reused, but each Run needs its own context.
type Engine struct {
	delay time.Duration
	log   *logging.Logger
	sleep SleepFunc
	now   func() time.Time
	newID func() string
}

// New creates an Engine. If opts.Delay is negative, no suspension happens.
func New(opts Options) *Engine {
	e := &Engine{
		delay: max(opts.Delay, 0),
		log:   opts.Logger,
		sleep: opts.Sleep,
		now:   opts.Now,
		newID: opts.NewID,
	}
	if e.log == nil {
		e.log = logging.Default()
	}
	if e.sleep == nil {
		e.sleep = sleep
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e
}

// Delay returns the normalized suspension interval.
func (e *Engine) Delay() time.Duration {
	return e.delay
}

// Run steps alg over seq, publishing to obs, until every index has been
// stepped or ctx is cancelled.
//
// A cancelled run returns an Outcome with ExitReasonCancelled and a nil
// error. An error is returned only for invalid input or when obs fails; in
// the latter case the run stops immediately and OnComplete is not called.
func (e *Engine) Run(ctx context.Context, alg Algorithm, seq []int, obs Observer) (Outcome, error) {
	if alg == nil {
		return Outcome{}, ErrNilAlgorithm
	}
	if len(seq) == 0 {
		return Outcome{}, ErrEmptySequence
	}
	if obs == nil {
		obs = ObserverFuncs{}
	}

	values := slices.Clone(seq)
	runID := e.newID()
	log := e.log.WithFields(map[string]any{
		"run":       runID,
		"algorithm": alg.Name(),
	})
	started := e.now()

	log.Info("run started", "length", len(values), "delay", e.delay)

	acc := alg.Start(values[0])
	if err := obs.OnStep(annotate.Blank(values)); err != nil {
		return Outcome{}, e.observerFailed(log, StageStep, -1, err)
	}

	steps := 0
	for i := 1; i < len(values); i++ {
		if ctx.Err() != nil {
			return e.cancelled(log, obs, runID, steps)
		}

		if err := obs.OnStep(annotate.Project(values, i)); err != nil {
			return Outcome{}, e.observerFailed(log, StageStep, i, err)
		}

		if err := e.sleep(ctx, e.delay); err != nil {
			return e.cancelled(log, obs, runID, steps)
		}

		acc.Update(i, values[i])
		steps++
		log.Debug("step applied", "index", i, "value", values[i], "accumulator", acc.Value())
	}

	// A cancellation that arrived during the last suspension still wins.
	if ctx.Err() != nil {
		return e.cancelled(log, obs, runID, steps)
	}

	if err := obs.OnStep(annotate.Complete(values)); err != nil {
		return Outcome{}, e.observerFailed(log, StageStep, -1, err)
	}

	result := &Result{
		RunID:       runID,
		Algorithm:   alg.Name(),
		Value:       acc.Value(),
		Steps:       steps,
		Elapsed:     e.now().Sub(started),
		Accumulator: acc,
	}
	outcome := Outcome{
		Reason: ExitReasonDone,
		RunID:  runID,
		Steps:  steps,
		Result: result,
	}

	log.Info("run completed", "value", result.Value, "steps", steps, "elapsed", result.Elapsed)

	if err := obs.OnComplete(outcome); err != nil {
		return outcome, e.observerFailed(log, StageComplete, -1, err)
	}
	return outcome, nil
}

func (e *Engine) cancelled(log *logging.Logger, obs Observer, runID string, steps int) (Outcome, error) {
	outcome := Outcome{
		Reason: ExitReasonCancelled,
		RunID:  runID,
		Steps:  steps,
	}

	log.Info("run cancelled", "steps", steps)

	if err := obs.OnComplete(outcome); err != nil {
		return outcome, e.observerFailed(log, StageComplete, -1, err)
	}
	return outcome, nil
}

func (e *Engine) observerFailed(log *logging.Logger, stage string, index int, err error) error {
	log.Error("observer failed", "stage", stage, "index", index, "error", err)
	return &ObserverError{Stage: stage, Index: index, Err: err}
}

// sleep waits for d unless ctx is done first. A non-positive d returns
// immediately without consulting ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
