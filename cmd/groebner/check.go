package main

import (
	"context"
	"io"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/ring"
)

func (a *app) newCheckCmd() *cobra.Command {
	flags := &engineFlags{}
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Report whether the generators already form a Gröbner basis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadIdeal(args[0])
			if err != nil {
				return err
			}
			opts, err := a.options(cmd, f, flags)
			if err != nil {
				return err
			}
			return f.dispatch(ringHandlers{
				rational: runCheck[*big.Rat](cmd.Context(), a.stdout, f, opts),
				integer:  runCheck[*big.Int](cmd.Context(), a.stdout, f, opts),
				product:  runCheck[ring.Tuple[*big.Int]](cmd.Context(), a.stdout, f, opts),
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func runCheck[C any](ctx context.Context, w io.Writer, f *IdealFile, opts []gb.Option) func(ring.Ring[C]) error {
	return func(r ring.Ring[C]) error {
		gens, err := generators(f, r)
		if err != nil {
			return err
		}
		e, err := gb.GetImplementation(r, opts...)
		if err != nil {
			return err
		}
		ok, err := e.IsGroebnerBasis(ctx, gens)
		if err != nil {
			return err
		}
		printVerdict(w, ok, "Generator set")
		return nil
	}
}
