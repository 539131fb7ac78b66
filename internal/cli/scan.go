package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/config"
	"github.com/thruflo/stepviz/internal/logging"
	"github.com/thruflo/stepviz/internal/loop"
	"github.com/thruflo/stepviz/internal/scan"
	"github.com/thruflo/stepviz/internal/tui"
)

var (
	scanAlgorithm string
	scanValues    string
	scanDelay     time.Duration
	scanPlain     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Step a scan over an integer array",
	Long: `Runs a single-pass scan (Kadane's maximum subarray by default) over an
array, pausing between steps so each one can be seen.

On a terminal the array is drawn as coloured cells: blue unvisited, yellow
active, green done. Keys: c/esc cancel, r restart, e edit values, t log,
q/ctrl+c quit.

With --plain, or when stdin or stdout is not a terminal, one line is
printed per step and ctrl+c cancels the run.`,
	Example: `  stepviz scan
  stepviz scan --values "-2,1,-3,4,-1,2,1,-5,4" --delay 150ms
  stepviz scan --algorithm max --plain`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanAlgorithm, "algorithm", "a", "", "scan to run (see 'stepviz algorithms')")
	scanCmd.Flags().StringVarP(&scanValues, "values", "v", "", "comma or space separated integers")
	scanCmd.Flags().DurationVarP(&scanDelay, "delay", "d", 0, "pause after each step (default from config)")
	scanCmd.Flags().BoolVar(&scanPlain, "plain", false, "print steps as text instead of opening the interactive view")
	rootCmd.AddCommand(scanCmd)
}

// scanOptions is the resolved input of one scan command.
type scanOptions struct {
	alg    loop.Algorithm
	values []int
	delay  time.Duration
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := resolveScanOptions(cfg, cmd.Flags().Changed("delay"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if scanPlain || !tui.IsTerminal(os.Stdin) || !tui.IsTerminal(os.Stdout) {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		engine := loop.New(loop.Options{Delay: opts.delay})
		return runPlainScan(ctx, cmd.OutOrStdout(), engine, opts)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	return runInteractiveScan(ctx, opts, level)
}

// resolveScanOptions merges flags over cfg. Flags win when set.
func resolveScanOptions(cfg *config.Config, delaySet bool) (scanOptions, error) {
	name := cfg.Algorithm
	if scanAlgorithm != "" {
		name = scanAlgorithm
	}
	alg, err := scan.Lookup(name)
	if err != nil {
		return scanOptions{}, err
	}

	values := cfg.Values
	if scanValues != "" {
		values, err = parseValues(scanValues)
		if err != nil {
			return scanOptions{}, fmt.Errorf("invalid --values: %w", err)
		}
	}

	delay := cfg.Delay()
	if delaySet {
		delay = scanDelay
	}

	return scanOptions{alg: alg, values: values, delay: delay}, nil
}

// runPlainScan runs once and prints each annotation as a line of cells. A
// cancelled run is reported, not returned as an error.
func runPlainScan(ctx context.Context, w io.Writer, engine *loop.Engine, opts scanOptions) error {
	obs := &plainObserver{w: w, values: opts.values}
	if _, err := engine.Run(ctx, opts.alg, opts.values, obs); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

type plainObserver struct {
	w      io.Writer
	values []int
}

func (o *plainObserver) OnStep(a annotate.Annotation) error {
	completed, total := loop.CalculateProgress(a)
	_, err := fmt.Fprintf(o.w, "%s  %d/%d\n", tui.FormatArray(o.values, a, false), completed, total)
	return err
}

func (o *plainObserver) OnComplete(out loop.Outcome) error {
	if out.Cancelled() {
		_, err := fmt.Fprintf(o.w, "cancelled after %d steps\n", out.Steps)
		return err
	}

	var f tui.Frame
	applyResult(&f, out.Result)
	_, err := fmt.Fprintln(o.w, tui.FormatResult(f))
	return err
}

// applyResult copies a finished run's value and span into f.
func applyResult(f *tui.Frame, r *loop.Result) {
	if r == nil {
		return
	}
	f.HasResult = true
	f.Result = r.Value
	if spanner, ok := r.Accumulator.(scan.Spanner); ok {
		f.HasSpan = true
		f.SpanStart, f.SpanEnd = spanner.Span()
	}
}

// frameObserver turns engine publications into TUI frames for one run.
type frameObserver struct {
	ui   *tui.TUI
	base tui.Frame
}

func newFrameObserver(ui *tui.TUI, run int, algorithm string, values []int, delay time.Duration) *frameObserver {
	return &frameObserver{
		ui: ui,
		base: tui.Frame{
			Run:       run,
			Algorithm: algorithm,
			Values:    values,
			Delay:     delay,
			Status:    tui.StatusRunning,
		},
	}
}

func (o *frameObserver) OnStep(a annotate.Annotation) error {
	f := o.base
	f.Annotation = a
	o.ui.SetFrame(f)
	return nil
}

func (o *frameObserver) OnComplete(out loop.Outcome) error {
	o.ui.UpdateFrame(func(f *tui.Frame) {
		if out.Cancelled() {
			f.Status = tui.StatusCancelled
			f.Message = fmt.Sprintf("cancelled after %d steps, press r to restart", out.Steps)
			return
		}
		f.Status = tui.StatusDone
		f.Message = ""
		applyResult(f, out.Result)
	})
	if !out.Cancelled() {
		o.ui.Bell()
	}
	return nil
}

// runInteractiveScan drives the TUI and the run controller side by side.
// Logs go to the TUI's log view so they do not tear the frame.
func runInteractiveScan(ctx context.Context, opts scanOptions, level logging.Level) error {
	ui := tui.NewTUI(os.Stdout)
	logger := logging.NewWithWriter(ui.LogWriter(), level)
	engine := loop.New(loop.Options{Delay: opts.delay, Logger: logger})

	ctrl := newRunController(engine, opts.alg, logger, func(run int, values []int) loop.Observer {
		return newFrameObserver(ui, run, opts.alg.Name(), values, opts.delay)
	})
	ctrl.onError = func(err error) {
		ui.UpdateFrame(func(f *tui.Frame) {
			f.Status = tui.StatusError
			f.Message = err.Error()
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return ui.Run(gctx)
	})
	g.Go(func() error {
		return ctrl.Serve(gctx, ui.Actions(), opts.values)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
