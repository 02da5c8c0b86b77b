package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

type basisOptions struct {
	engineFlags
	proxy  bool
	verify bool
}

func (a *app) newBasisCmd() *cobra.Command {
	opts := &basisOptions{}
	cmd := &cobra.Command{
		Use:   "basis FILE",
		Short: "Compute the Gröbner basis of an ideal",
		Long: `Compute a Gröbner basis and print it as a table.

Examples:
  # Reduced basis with the default engine
  groebner basis circle.yaml

  # Race a sequential and a parallel engine with 4 workers
  groebner basis circle.yaml --proxy -w 4

  # Fraction-free computation over Q
  groebner basis circle.yaml --algo ffgb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadIdeal(args[0])
			if err != nil {
				return err
			}
			gopts, err := a.options(cmd, f, &opts.engineFlags)
			if err != nil {
				return err
			}
			return f.dispatch(ringHandlers{
				rational: runBasis[*big.Rat](cmd.Context(), a.stdout, f, opts, gopts),
				integer:  runBasis[*big.Int](cmd.Context(), a.stdout, f, opts, gopts),
				product:  runBasis[ring.Tuple[*big.Int]](cmd.Context(), a.stdout, f, opts, gopts),
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.proxy, "proxy", false, "Race the sequential and the parallel engine")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check the result with the Buchberger criterion")
	return cmd
}

// selectEngine returns the proxy or the plain implementation for r.
func selectEngine[C any](r ring.Ring[C], proxy bool, opts []gb.Option) (gb.Engine[C], error) {
	if proxy {
		return gb.GetProxy(r, opts...)
	}
	return gb.GetImplementation(r, opts...)
}

func runBasis[C any](ctx context.Context, w io.Writer, f *IdealFile, o *basisOptions, opts []gb.Option) func(ring.Ring[C]) error {
	return func(r ring.Ring[C]) error {
		gens, err := generators(f, r)
		if err != nil {
			return err
		}
		e, err := selectEngine(r, o.proxy, opts)
		if err != nil {
			return err
		}

		start := time.Now()
		basis, err := e.ComputeBasis(ctx, gens)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		_, _ = bold.Fprintf(w, "%s over %s: %d polynomials in %s\n", e, r, len(basis), elapsed.Round(time.Microsecond))
		if err := renderBasis(w, basis); err != nil {
			return err
		}

		if o.verify {
			ok, err := e.IsGroebnerBasis(ctx, basis)
			if err != nil {
				return err
			}
			printVerdict(w, ok, "Result")
		}
		return nil
	}
}

func renderBasis[C any](w io.Writer, basis []*poly.Polynomial[C]) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Leading term", "Polynomial")
	for i, p := range basis {
		lt := p.Ring().FromTerms([]poly.Term[C]{p.LeadingTerm()})
		_ = table.Append(strconv.Itoa(i+1), lt.String(), p.String())
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render basis: %w", err)
	}
	return nil
}

func printVerdict(w io.Writer, ok bool, subject string) {
	if ok {
		_, _ = green.Fprintf(w, "%s is a Gröbner basis\n", subject)
		return
	}
	_, _ = yellow.Fprintf(w, "%s is not a Gröbner basis\n", subject)
}
