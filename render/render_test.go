package render

import (
	"errors"
	"testing"
	"time"

	"github.com/marben/fractals"
	"github.com/marben/fractals/colormap"
)

func TestRender(t *testing.T) {
	var calls int
	r := Renderer{OnRender: func(p fractals.Params, elapsed time.Duration) {
		calls++
		if elapsed < 0 {
			t.Errorf("negative elapsed %s", elapsed)
		}
	}}

	for _, kind := range []fractals.Kind{fractals.KindJulia, fractals.KindMandelbrot} {
		p := fractals.DefaultParams(kind)
		p.N, p.K = 32, 40
		img, err := r.Render(p)
		if err != nil {
			t.Fatalf("Render(%s): %v", kind, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("Render(%s) bounds = %s", kind, b)
		}
	}
	if calls != 2 {
		t.Errorf("OnRender called %d times, want 2", calls)
	}
}

func TestRenderDefaultColormap(t *testing.T) {
	p := fractals.DefaultParams(fractals.KindMandelbrot)
	p.N, p.K = 16, 30

	named, err := Renderer{}.Render(p)
	if err != nil {
		t.Fatal(err)
	}
	p.Colormap = ""
	unnamed, err := Renderer{}.Render(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range named.Pix {
		if named.Pix[i] != unnamed.Pix[i] {
			t.Fatalf("empty colormap did not fall back to inferno (byte %d)", i)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	p := fractals.DefaultParams(fractals.KindJulia)
	p.N = 1
	if _, err := (Renderer{}).Render(p); !errors.Is(err, fractals.ErrResolution) {
		t.Errorf("n=1: got %v, want ErrResolution", err)
	}

	p = fractals.DefaultParams(fractals.KindJulia)
	p.Colormap = "jet"
	if _, err := (Renderer{}).Render(p); !errors.Is(err, colormap.ErrUnknownColormap) {
		t.Errorf("colormap jet: got %v, want ErrUnknownColormap", err)
	}
}
