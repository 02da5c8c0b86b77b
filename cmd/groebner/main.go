// Command groebner computes and benchmarks Gröbner bases of ideals
// described in YAML files.
package main

import (
	"context"
	"os"

	"github.com/fatih/color"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Execute(context.Background()); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
