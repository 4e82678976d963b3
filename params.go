package fractals

import (
	"errors"
	"fmt"
	"math"
)

// Kind selects the recurrence.
type Kind string

const (
	KindJulia      Kind = "julia"
	KindMandelbrot Kind = "mandelbrot"
)

// Limits enforced by Params.Validate.
const (
	MinResolution = 2
	MaxResolution = 2048
	MinIterations = 1
	MaxIterations = 10000
)

var (
	ErrUnknownKind   = errors.New("unknown fractal kind")
	ErrInvalidRegion = errors.New("invalid region")
	ErrInvalidConst  = errors.New("invalid constant")
	ErrResolution    = errors.New("resolution out of range")
	ErrIterations    = errors.New("iteration cap out of range")
)

// Params is one full set of user-adjustable inputs.
// A change to any field means a recomputation from scratch.
type Params struct {
	Kind     Kind    `json:"kind"`
	CRe      float64 `json:"cre"`
	CIm      float64 `json:"cim"`
	Region   Region  `json:"region"`
	N        int     `json:"n"`
	K        int     `json:"k"`
	Colormap string  `json:"colormap,omitempty"`
}

// DefaultParams returns the start-up parameters for kind.
// Unknown kinds fall back to the Mandelbrot defaults.
func DefaultParams(kind Kind) Params {
	if kind == KindJulia {
		return Params{
			Kind:     KindJulia,
			CRe:      0.285,
			CIm:      0.01,
			Region:   JuliaView,
			N:        500,
			K:        100,
			Colormap: "twilight",
		}
	}
	return Params{
		Kind:     KindMandelbrot,
		Region:   MandelbrotView,
		N:        500,
		K:        100,
		Colormap: "inferno",
	}
}

// C returns the Julia constant.
func (p Params) C() complex128 {
	return complex(p.CRe, p.CIm)
}

// Validate reports the first parameter the engine would compute a degenerate result for.
// Colormap names are checked by the renderer.
func (p Params) Validate() error {
	switch p.Kind {
	case KindJulia:
		if !finite(p.CRe) || !finite(p.CIm) {
			return fmt.Errorf("c = %v: %w", p.C(), ErrInvalidConst)
		}
	case KindMandelbrot:
	default:
		return fmt.Errorf("%q: %w", p.Kind, ErrUnknownKind)
	}

	r := p.Region
	if !finite(r.Xmin) || !finite(r.Xmax) || !finite(r.Ymin) || !finite(r.Ymax) {
		return fmt.Errorf("non-finite bounds %+v: %w", r, ErrInvalidRegion)
	}
	if r.Xmin >= r.Xmax {
		return fmt.Errorf("xmin %g >= xmax %g: %w", r.Xmin, r.Xmax, ErrInvalidRegion)
	}
	if r.Ymin >= r.Ymax {
		return fmt.Errorf("ymin %g >= ymax %g: %w", r.Ymin, r.Ymax, ErrInvalidRegion)
	}
	if p.N < MinResolution || p.N > MaxResolution {
		return fmt.Errorf("n = %d not in [%d, %d]: %w", p.N, MinResolution, MaxResolution, ErrResolution)
	}
	if p.K < MinIterations || p.K > MaxIterations {
		return fmt.Errorf("k = %d not in [%d, %d]: %w", p.K, MinIterations, MaxIterations, ErrIterations)
	}
	return nil
}

// Compute runs the engine selected by p.Kind.
// Params are not validated here; call Validate first.
func (p Params) Compute() DivergenceMatrix {
	if p.Kind == KindJulia {
		return Julia(p.C(), p.Region, p.N, p.K)
	}
	return Mandelbrot(p.Region, p.N, p.K)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
