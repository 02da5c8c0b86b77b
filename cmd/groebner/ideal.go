package main

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// IdealFile is the YAML description of an ideal.
//
//	ring: rational            # rational | integer | mod:P | product
//	factors: [integer, mod:3] # product only
//	vars: [x, y]
//	order: lex                # lex | grlex | grevlex
//	generators:
//	  - x^2 + y^2 - 1
//	  - x - y
//	algorithm: ffgb           # optional
//	pairs: sugar              # optional
//	execution:
//	  workers: 4
type IdealFile struct {
	Ring       string             `yaml:"ring"`
	Factors    []string           `yaml:"factors"`
	Vars       []string           `yaml:"vars"`
	Order      string             `yaml:"order"`
	Generators []string           `yaml:"generators"`
	Algorithm  string             `yaml:"algorithm"`
	Pairs      string             `yaml:"pairs"`
	Execution  gb.ExecutionConfig `yaml:"execution"`
}

func loadIdeal(path string) (*IdealFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ideal file: %w", err)
	}
	var f IdealFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse ideal file %s: %w", path, err)
	}
	if len(f.Vars) == 0 {
		return nil, fmt.Errorf("%s: no variables declared", path)
	}
	if len(f.Generators) == 0 {
		return nil, fmt.Errorf("%s: no generators", path)
	}
	return &f, nil
}

// options turns the file settings into factory options. Later options
// from command-line flags override them.
func (f *IdealFile) options() ([]gb.Option, error) {
	algo, err := gb.ParseAlgorithm(f.Algorithm)
	if err != nil {
		return nil, err
	}
	strategy, err := gb.ParsePairStrategy(f.Pairs)
	if err != nil {
		return nil, err
	}
	return []gb.Option{
		gb.WithExecutionConfig(f.Execution),
		gb.WithAlgorithm(algo),
		gb.WithPairStrategy(strategy),
	}, nil
}

// generators parses the generator list over coeff.
func generators[C any](f *IdealFile, coeff ring.Ring[C]) ([]*poly.Polynomial[C], error) {
	order, err := poly.ParseOrder(f.Order)
	if err != nil {
		return nil, err
	}
	r := poly.NewRing(coeff, f.Vars, order)
	return r.ParseAll(f.Generators...)
}

// ringHandlers holds one instantiation of a command per coefficient type.
type ringHandlers struct {
	rational func(ring.Ring[*big.Rat]) error
	integer  func(ring.Ring[*big.Int]) error
	product  func(ring.Ring[ring.Tuple[*big.Int]]) error
}

// dispatch builds the coefficient ring named in the file and calls the
// handler for its element type.
func (f *IdealFile) dispatch(h ringHandlers) error {
	name := strings.TrimSpace(f.Ring)
	switch {
	case name == "rational" || name == "":
		return h.rational(ring.Rationals{})
	case name == "product":
		if len(f.Factors) == 0 {
			return fmt.Errorf("product ring needs factors")
		}
		factors := make([]ring.Ring[*big.Int], len(f.Factors))
		for i, fac := range f.Factors {
			r, err := integerRing(fac)
			if err != nil {
				return fmt.Errorf("factor %d: %w", i, err)
			}
			factors[i] = r
		}
		return h.product(ring.NewProduct(factors...))
	default:
		r, err := integerRing(name)
		if err != nil {
			return err
		}
		return h.integer(r)
	}
}

// integerRing parses "integer" or "mod:P".
func integerRing(name string) (ring.Ring[*big.Int], error) {
	if name == "integer" {
		return ring.Integers{}, nil
	}
	mod, ok := strings.CutPrefix(name, "mod:")
	if !ok {
		return nil, fmt.Errorf("unknown ring %q", name)
	}
	m, err := strconv.ParseInt(strings.TrimSpace(mod), 10, 64)
	if err != nil || m < 2 {
		return nil, fmt.Errorf("invalid modulus %q", mod)
	}
	return ring.NewModular(m), nil
}
