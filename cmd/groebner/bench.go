package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/ring"
)

type benchOptions struct {
	engineFlags
	runs int
}

// benchResult is the timing of one engine over all runs.
type benchResult struct {
	Engine  string
	Average time.Duration
	Size    int
}

func (a *app) newBenchCmd() *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench FILE",
		Short: "Time the sequential, parallel and proxy engines on an ideal",
		Long: `Run every applicable engine on the same ideal and compare average
wall-clock times. Parallel engines run with 1, 2 and the configured number
of workers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			f, err := loadIdeal(args[0])
			if err != nil {
				return err
			}
			gopts, err := a.options(cmd, f, &opts.engineFlags)
			if err != nil {
				return err
			}
			return f.dispatch(ringHandlers{
				rational: runBench[*big.Rat](cmd.Context(), a, f, opts, gopts),
				integer:  runBench[*big.Int](cmd.Context(), a, f, opts, gopts),
				product:  runBench[ring.Tuple[*big.Int]](cmd.Context(), a, f, opts, gopts),
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.runs, "runs", "n", 3, "Runs per engine")
	return cmd
}

// benchEngines lists the engines to compare. Rings and algorithms without
// a parallel engine, and runs with concurrency disabled, are only timed
// sequentially.
func benchEngines[C any](r ring.Ring[C], opts []gb.Option) ([]gb.Engine[C], error) {
	seq, err := gb.GetImplementation(r, opts...)
	if err != nil {
		return nil, err
	}
	engines := []gb.Engine[C]{seq}

	configured := gb.DefaultWorkers()
	if e, err := gb.GetParallel(r, opts...); err == nil {
		if p, ok := e.(interface{ Workers() int }); ok {
			configured = p.Workers()
		}
	}
	counts := []int{1, 2, configured}
	slices.Sort(counts)
	for _, w := range slices.Compact(counts) {
		e, err := gb.GetParallel(r, append(slices.Clone(opts), gb.WithWorkerCount(w))...)
		if errors.Is(err, gb.ErrUnsupportedAlgorithm) {
			return engines, nil
		}
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}

	proxy, err := gb.GetProxy(r, opts...)
	if err != nil {
		return nil, err
	}
	return append(engines, proxy), nil
}

func runBench[C any](ctx context.Context, a *app, f *IdealFile, o *benchOptions, opts []gb.Option) func(ring.Ring[C]) error {
	return func(r ring.Ring[C]) error {
		gens, err := generators(f, r)
		if err != nil {
			return err
		}
		engines, err := benchEngines(r, opts)
		if err != nil {
			return err
		}

		bar := makeProgressBar(a.stderr, len(engines)*o.runs)
		results := make([]benchResult, 0, len(engines))
		for _, e := range engines {
			var total time.Duration
			size := 0
			for range o.runs {
				bar.Describe("Running " + e.String())
				start := time.Now()
				basis, err := e.ComputeBasis(ctx, gens)
				if err != nil {
					return fmt.Errorf("%s: %w", e, err)
				}
				total += time.Since(start)
				size = len(basis)
				_ = bar.Add(1)
			}
			results = append(results, benchResult{
				Engine:  e.String(),
				Average: total / time.Duration(o.runs),
				Size:    size,
			})
		}
		_ = bar.Finish()

		slices.SortStableFunc(results, func(x, y benchResult) int { return cmp.Compare(x.Average, y.Average) })
		_, _ = bold.Fprintf(a.stdout, "%d generators over %s, %d runs per engine\n", len(gens), r, o.runs)
		return renderBench(a.stdout, results)
	}
}

func renderBench(w io.Writer, results []benchResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Engine", "Average", "Basis size", "vs Fastest")
	fastest := results[0].Average
	for i, r := range results {
		vs := "fastest"
		if i > 0 && fastest > 0 {
			vs = fmt.Sprintf("%.2fx", float64(r.Average)/float64(fastest))
		}
		_ = table.Append(strconv.Itoa(i+1), r.Engine, r.Average.Round(time.Microsecond).String(), strconv.Itoa(r.Size), vs)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return nil
}

func makeProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Benchmarking engines"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
