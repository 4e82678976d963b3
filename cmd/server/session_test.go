package main

import (
	"errors"
	"image"
	"net/url"
	"testing"

	"github.com/marben/fractals"
	"github.com/marben/fractals/render"
)

func TestSplitRectNoClip(t *testing.T) {
	tiles := splitRectNoClip(image.Rect(0, 0, 130, 64), 64, 64)
	want := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(64, 0, 128, 64),
		image.Rect(128, 0, 130, 64),
	}
	if len(tiles) != len(want) {
		t.Fatalf("got %d tiles, want %d", len(tiles), len(want))
	}
	for i := range want {
		if tiles[i] != want[i] {
			t.Errorf("tile %d = %s, want %s", i, tiles[i], want[i])
		}
	}

	area := 0
	for _, tile := range splitRectNoClip(image.Rect(10, 20, 211, 99), 64, 32) {
		area += tile.Dx() * tile.Dy()
	}
	if area != 201*79 {
		t.Errorf("tiles cover %d pixels, want %d", area, 201*79)
	}
}

func TestSplitRectNoClipPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero tile width")
		}
	}()
	splitRectNoClip(image.Rect(0, 0, 10, 10), 0, 10)
}

func TestSessionUpdate(t *testing.T) {
	s := newSession(render.Renderer{})
	if _, _, err := s.Image(); !errors.Is(err, fractals.ErrNoImage) {
		t.Fatalf("new session: Image() error = %v, want ErrNoImage", err)
	}

	p := fractals.DefaultParams(fractals.KindJulia)
	p.N, p.K = 100, 50
	frame, img, tiles := s.update(p)
	if frame.Error != "" {
		t.Fatalf("update: %s", frame.Error)
	}
	if frame.Seq != 1 || frame.Width != 100 || frame.Height != 100 || frame.Tiles != 4 || len(tiles) != 4 {
		t.Errorf("frame = %+v with %d tiles", frame, len(tiles))
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("image bounds = %s", img.Bounds())
	}

	bad := p
	bad.Region.Xmin = 5
	frame, img, tiles = s.update(bad)
	if frame.Error == "" || img != nil || tiles != nil {
		t.Errorf("invalid params produced frame %+v", frame)
	}
	if frame.Seq != 2 {
		t.Errorf("seq = %d, want 2", frame.Seq)
	}

	current, cp, err := s.Image()
	if err != nil || current == nil || cp != p {
		t.Errorf("failed update replaced the current image: params %+v, %v", cp, err)
	}

	frame = s.reject(errors.New("decode params: bad json"))
	if frame.Seq != 3 || frame.Error != "decode params: bad json" || frame.Tiles != 0 {
		t.Errorf("reject frame = %+v", frame)
	}
}

func TestSessionRender(t *testing.T) {
	s := newSession(render.Renderer{})

	p := fractals.DefaultParams(fractals.KindMandelbrot)
	p.N, p.K = 32, 20
	img, err := s.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	current, cp, err := s.Image()
	if err != nil || current != img || cp != p {
		t.Errorf("Image() = %p %+v %v, want the rendered image", current, cp, err)
	}

	bad := p
	bad.K = fractals.MaxIterations + 1
	if _, err := s.Render(bad); !errors.Is(err, fractals.ErrIterations) {
		t.Errorf("Render(k too large) = %v, want ErrIterations", err)
	}
	if current, cp, _ := s.Image(); current != img || cp != p {
		t.Errorf("failed Render replaced the current image: params %+v", cp)
	}
}

func TestStats(t *testing.T) {
	st := &stats{}
	st.incSessions()
	st.incSessions()
	st.decSessions()
	st.rendered()
	if sessions, renders := st.snapshot(); sessions != 1 || renders != 1 {
		t.Errorf("snapshot = %d sessions, %d renders", sessions, renders)
	}
}

func TestParamsFromQuery(t *testing.T) {
	p, err := paramsFromQuery(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if p != fractals.DefaultParams(fractals.KindMandelbrot) {
		t.Errorf("empty query = %+v", p)
	}

	p, err = paramsFromQuery(url.Values{
		"kind":     {"julia"},
		"cre":      {"-0.8"},
		"cim":      {"0.156"},
		"region":   {"seahorse-valley"},
		"xmax":     {"-0.6"},
		"n":        {"64"},
		"k":        {"300"},
		"colormap": {"plasma"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := fractals.Params{
		Kind:     fractals.KindJulia,
		CRe:      -0.8,
		CIm:      0.156,
		Region:   fractals.Region{Xmin: -0.8, Xmax: -0.6, Ymin: 0.05, Ymax: 0.15},
		N:        64,
		K:        300,
		Colormap: "plasma",
	}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}

	for _, q := range []url.Values{
		{"region": {"atlantis"}},
		{"xmin": {"left"}},
		{"k": {"1.5"}},
	} {
		if _, err := paramsFromQuery(q); err == nil {
			t.Errorf("paramsFromQuery(%v) succeeded", q)
		}
	}
}
