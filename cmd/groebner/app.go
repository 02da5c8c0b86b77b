package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/utkarsh5026/groebner/gb"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

// app is the groebner command line.
type app struct {
	root    *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  *zap.Logger
}

// engineFlags are the factory settings shared by all commands. Flags that
// were set override the ideal file.
type engineFlags struct {
	algorithm string
	pairs     string
	workers   int
	serial    bool
	pin       bool
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}
	a.root = &cobra.Command{
		Use:   "groebner",
		Short: "Compute Gröbner bases of polynomial ideals",
		Long: `groebner computes Gröbner bases over Q, Z, Z/m and products of
those rings. Ideals are read from YAML files:

  ring: rational
  vars: [x, y]
  order: lex
  generators:
    - x^2 + y^2 - 1
    - x - y`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	a.root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every accepted polynomial")

	a.root.AddCommand(
		a.newBasisCmd(),
		a.newCheckCmd(),
		a.newBenchCmd(),
	)
	return a
}

// Execute runs the command line until it finishes or is interrupted.
func (a *app) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return a.root.ExecuteContext(ctx)
}

func (a *app) executeWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.algorithm, "algo", "", "Algorithm: igb, egb, dgb, qgb or ffgb")
	cmd.Flags().StringVar(&f.pairs, "pairs", "", "Pair strategy: normal, sugar or fifo")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel workers (0 = available CPUs - 1, at least 2)")
	cmd.Flags().BoolVar(&f.serial, "no-concurrency", false, "Never start parallel engines")
	cmd.Flags().BoolVar(&f.pin, "pin", false, "Pin parallel workers to CPUs")
}

// options combines the ideal file settings, the flags and the logger.
func (a *app) options(cmd *cobra.Command, f *IdealFile, flags *engineFlags) ([]gb.Option, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("algo") {
		algo, err := gb.ParseAlgorithm(flags.algorithm)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gb.WithAlgorithm(algo))
	}
	if cmd.Flags().Changed("pairs") {
		s, err := gb.ParsePairStrategy(flags.pairs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gb.WithPairStrategy(s))
	}
	if flags.workers > 0 {
		opts = append(opts, gb.WithWorkerCount(flags.workers))
	}
	if flags.serial {
		opts = append(opts, gb.WithoutConcurrency())
	}
	if flags.pin {
		opts = append(opts, gb.WithCPUPinning())
	}
	return append(opts, gb.WithLogger(a.logger)), nil
}
