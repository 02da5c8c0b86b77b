package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const circleYAML = `
ring: rational
vars: [x, y]
order: lex
generators:
  - x^2 + y^2 - 1
  - x - y
execution:
  workers: 2
  progress_interval: 1s
`

func writeIdeal(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ideal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(&stdout, &stderr)
	a.logger = zap.NewNop()
	err := a.executeWithArgs(context.Background(), args)
	return stdout.String(), err
}

func TestLoadIdeal(t *testing.T) {
	t.Run("reads the execution block", func(t *testing.T) {
		f, err := loadIdeal(writeIdeal(t, circleYAML))
		require.NoError(t, err)
		require.Equal(t, []string{"x", "y"}, f.Vars)
		require.Len(t, f.Generators, 2)
		require.Equal(t, 2, f.Execution.Workers)
		require.Equal(t, time.Second, f.Execution.ProgressInterval)
	})

	t.Run("rejects files without generators", func(t *testing.T) {
		_, err := loadIdeal(writeIdeal(t, "ring: integer\nvars: [x]\n"))
		require.ErrorContains(t, err, "no generators")
	})

	t.Run("rejects unknown rings", func(t *testing.T) {
		f := &IdealFile{Ring: "gaussian"}
		err := f.dispatch(ringHandlers{})
		require.ErrorContains(t, err, `unknown ring "gaussian"`)
	})
}

func TestBasisCommand(t *testing.T) {
	t.Run("reduced basis over the rationals", func(t *testing.T) {
		out, err := run(t, "basis", writeIdeal(t, circleYAML), "--verify")
		require.NoError(t, err)
		require.Contains(t, out, "field-seq over Q")
		require.Contains(t, out, "x - y")
		require.Contains(t, out, "y^2 - 1/2")
		require.Contains(t, out, "Result is a Gröbner basis")
	})

	t.Run("proxy and flags", func(t *testing.T) {
		out, err := run(t, "basis", writeIdeal(t, circleYAML), "--proxy", "-w", "3", "--pairs", "sugar")
		require.NoError(t, err)
		require.Contains(t, out, "proxy(field-seq, field-parallel(3))")
		require.Contains(t, out, "y^2 - 1/2")
	})

	t.Run("fraction-free algorithm", func(t *testing.T) {
		out, err := run(t, "basis", writeIdeal(t, circleYAML), "--algo", "ffgb")
		require.NoError(t, err)
		require.Contains(t, out, "fraction-free over Q")
		require.Contains(t, out, "y^2 - 1/2")
	})

	t.Run("integers keep their coefficients", func(t *testing.T) {
		path := writeIdeal(t, "ring: integer\nvars: [x, y]\ngenerators: [2*x, 3*y]\n")
		out, err := run(t, "basis", path)
		require.NoError(t, err)
		require.Contains(t, out, "pseudo-seq over Z")
		require.Contains(t, out, "2*x")
		require.Contains(t, out, "3*y")
	})

	t.Run("product rings", func(t *testing.T) {
		path := writeIdeal(t, "ring: product\nfactors: [integer, mod:3]\nvars: [x]\ngenerators: [3*x + 1]\n")
		out, err := run(t, "basis", path)
		require.NoError(t, err)
		require.Contains(t, out, "regular-seq")
		require.Contains(t, out, "(0, 1)")
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := run(t, "basis", writeIdeal(t, circleYAML), "--algo", "dgb")
		require.ErrorContains(t, err, "algorithm dgb is not supported over Q")

		_, err = run(t, "basis", writeIdeal(t, circleYAML), "--proxy", "--algo", "dgb")
		require.ErrorContains(t, err, "algorithm dgb is not supported over Q")
	})
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", writeIdeal(t, circleYAML))
	require.NoError(t, err)
	require.Contains(t, out, "Generator set is not a Gröbner basis")

	path := writeIdeal(t, "ring: rational\nvars: [x, y]\ngenerators: [x - y, y^2 - 1/2]\n")
	out, err = run(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, out, "Generator set is a Gröbner basis")
}

func TestBenchCommand(t *testing.T) {
	t.Run("times every engine", func(t *testing.T) {
		out, err := run(t, "bench", writeIdeal(t, circleYAML), "--runs", "1", "-w", "4")
		require.NoError(t, err)
		for _, name := range []string{"field-seq", "field-parallel(1)", "field-parallel(2)", "field-parallel(4)", "proxy(field-seq, field-parallel(4))"} {
			require.Contains(t, out, name)
		}
	})

	t.Run("rings without parallel engines", func(t *testing.T) {
		path := writeIdeal(t, "ring: mod:6\nvars: [x]\ngenerators: [2*x + 1]\n")
		out, err := run(t, "bench", path, "--runs", "1")
		require.NoError(t, err)
		require.Contains(t, out, "pseudo-seq")
		require.NotContains(t, out, "parallel")
	})

	t.Run("algorithm tags without a parallel variant", func(t *testing.T) {
		path := writeIdeal(t, "ring: integer\nvars: [x, y]\ngenerators: [2*x, 3*y]\n")
		out, err := run(t, "bench", path, "--runs", "1", "--algo", "dgb")
		require.NoError(t, err)
		require.Contains(t, out, "d-seq")
		require.NotContains(t, out, "pseudo")
		require.NotContains(t, out, "proxy")
	})

	t.Run("disabled concurrency", func(t *testing.T) {
		out, err := run(t, "bench", writeIdeal(t, circleYAML), "--runs", "1", "--no-concurrency")
		require.NoError(t, err)
		require.Contains(t, out, "field-seq")
		require.NotContains(t, out, "parallel")
	})

	t.Run("invalid run count", func(t *testing.T) {
		_, err := run(t, "bench", writeIdeal(t, circleYAML), "--runs", "0")
		require.ErrorContains(t, err, "--runs must be at least 1")
	})
}
