package cli

import (
	"context"
	"sync"

	"github.com/thruflo/stepviz/internal/logging"
	"github.com/thruflo/stepviz/internal/loop"
	"github.com/thruflo/stepviz/internal/tui"
)

// runController owns at most one in-flight run. Starting a run first
// cancels the previous one and waits for it to return, so two runs never
// publish to the same view.
//
// Start and Stop are called from a single goroutine (Serve).
type runController struct {
	engine  *loop.Engine
	alg     loop.Algorithm
	log     *logging.Logger
	observe func(run int, values []int) loop.Observer
	onError func(err error)

	mu     sync.Mutex
	values []int
	runs   int
	cancel context.CancelFunc
	done   chan struct{}
}

func newRunController(engine *loop.Engine, alg loop.Algorithm, log *logging.Logger, observe func(run int, values []int) loop.Observer) *runController {
	return &runController{
		engine:  engine,
		alg:     alg,
		log:     log,
		observe: observe,
	}
}

// Start stops the current run, if any, then starts a new one over values.
func (c *runController) Start(ctx context.Context, values []int) {
	c.Stop()

	c.mu.Lock()
	c.runs++
	run := c.runs
	c.values = append([]int(nil), values...)
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	obs := c.observe(run, c.values)
	seq := c.values
	c.mu.Unlock()

	c.log.Debug("starting run", "run", run, "length", len(seq))

	go func() {
		defer close(done)
		defer cancel()
		if _, err := c.engine.Run(runCtx, c.alg, seq, obs); err != nil {
			c.log.Error("run failed", "run", run, "error", err)
			if c.onError != nil {
				c.onError(err)
			}
		}
	}()
}

// Stop cancels the current run and blocks until it has returned.
func (c *runController) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the current run, if any, returns on its own.
func (c *runController) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Values returns the input of the most recent run.
func (c *runController) Values() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.values...)
}

// Runs returns how many runs have been started.
func (c *runController) Runs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs
}

// Serve starts the first run over values and then follows user actions
// until ctx is done or the user quits. The last run is stopped on return.
func (c *runController) Serve(ctx context.Context, actions <-chan tui.ActionEvent, values []int) error {
	c.Start(ctx, values)
	defer c.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-actions:
			switch ev.Action {
			case tui.ActionCancel:
				c.Stop()

			case tui.ActionRestart:
				c.Start(ctx, c.Values())

			case tui.ActionSubmitInput:
				next, err := parseValues(ev.Input)
				if err != nil {
					c.log.Warn("ignoring edited values", "error", err)
					if c.onError != nil {
						c.onError(err)
					}
					continue
				}
				c.Start(ctx, next)

			case tui.ActionQuit:
				return nil
			}
		}
	}
}
