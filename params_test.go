package fractals

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	for _, kind := range []Kind{KindJulia, KindMandelbrot} {
		p := DefaultParams(kind)
		if p.Kind != kind {
			t.Errorf("DefaultParams(%q).Kind = %q", kind, p.Kind)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("DefaultParams(%q).Validate() = %v", kind, err)
		}
	}
	if c := DefaultParams(KindJulia).C(); c != 0.285+0.01i {
		t.Errorf("default julia constant = %v", c)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultParams(KindMandelbrot)

	tests := []struct {
		name   string
		modify func(p *Params)
		want   error
	}{
		{"unknown kind", func(p *Params) { p.Kind = "burning-ship" }, ErrUnknownKind},
		{"empty kind", func(p *Params) { p.Kind = "" }, ErrUnknownKind},
		{"nan constant", func(p *Params) { p.Kind = KindJulia; p.CRe = math.NaN() }, ErrInvalidConst},
		{"equal x bounds", func(p *Params) { p.Region.Xmax = p.Region.Xmin }, ErrInvalidRegion},
		{"inverted y bounds", func(p *Params) { p.Region.Ymin, p.Region.Ymax = 1, -1 }, ErrInvalidRegion},
		{"infinite bound", func(p *Params) { p.Region.Xmax = math.Inf(1) }, ErrInvalidRegion},
		{"n too small", func(p *Params) { p.N = 1 }, ErrResolution},
		{"n too large", func(p *Params) { p.N = MaxResolution + 1 }, ErrResolution},
		{"k zero", func(p *Params) { p.K = 0 }, ErrIterations},
		{"k too large", func(p *Params) { p.K = MaxIterations + 1 }, ErrIterations},
		{"smallest accepted", func(p *Params) { p.N, p.K = MinResolution, MinIterations }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			err := p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComputeDispatch(t *testing.T) {
	p := Params{Kind: KindJulia, CRe: -0.4, CIm: 0.6, Region: JuliaView, N: 20, K: 30}
	if got, want := p.Compute(), Julia(-0.4+0.6i, JuliaView, 20, 30); !reflect.DeepEqual(got, want) {
		t.Error("julia params did not compute the Julia matrix")
	}

	p.Kind = KindMandelbrot
	if got, want := p.Compute(), Mandelbrot(JuliaView, 20, 30); !reflect.DeepEqual(got, want) {
		t.Error("mandelbrot params did not compute the Mandelbrot matrix")
	}
}

func TestRegions(t *testing.T) {
	names := RegionNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("RegionNames() not sorted: %v", names)
	}
	for _, name := range names {
		r, ok := RegionByName(name)
		if !ok {
			t.Errorf("RegionByName(%q) not found", name)
			continue
		}
		p := Params{Kind: KindMandelbrot, Region: r, N: 2, K: 1}
		if err := p.Validate(); err != nil {
			t.Errorf("region %q: %v", name, err)
		}
	}
	if r, _ := RegionByName("seahorse-valley"); r != SeahorseValley {
		t.Errorf("seahorse-valley = %+v", r)
	}
	if _, ok := RegionByName("atlantis"); ok {
		t.Error("RegionByName(atlantis) found")
	}
}
