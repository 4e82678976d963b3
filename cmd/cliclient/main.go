// cliclient renders a Julia or Mandelbrot image and saves it as a PNG file.
// By default it calls the fractal server's Renderer over irpc, tunnelled
// through a websocket (or plain tcp with -network tcp);
// -local renders it in-process instead.

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/marben/fractals"
	"github.com/marben/fractals/render"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run parses flags, obtains the image and saves it.
func run() error {
	var (
		kind    = flag.String("kind", string(fractals.KindMandelbrot), "julia or mandelbrot")
		c       = flag.String("c", "", "julia constant, e.g. 0.285+0.01i (default 0.285+0.01i)")
		region  = flag.String("region", "", "region name or xmin,xmax,ymin,ymax (default: whole set)")
		n       = flag.Int("n", 0, "resolution in pixels per side (default 500)")
		k       = flag.Int("k", 0, "iteration cap (default 100)")
		cmap    = flag.String("colormap", "", "colour map (default twilight for julia, inferno for mandelbrot)")
		out     = flag.String("o", "fractal.png", "output file")
		addr    = flag.String("addr", "localhost:8080", "fractal server address (use the rpc port, 8081, with -network tcp)")
		network = flag.String("network", "ws", "ws or tcp")
		local   = flag.Bool("local", false, "render in-process instead of on the server")
		timeout = flag.Duration("timeout", time.Minute, "server round trip timeout")
	)
	flag.Parse()

	p, err := buildParams(*kind, *c, *region, *n, *k, *cmap)
	if err != nil {
		return fmt.Errorf("parameters: %w", err)
	}

	var img *image.RGBA
	if *local {
		log.Printf("Rendering %s locally...", p.Kind)
		renderer := render.Renderer{OnRender: func(p fractals.Params, elapsed time.Duration) {
			log.Printf("Rendered %dx%d in %s", p.N, p.N, elapsed)
		}}
		img, err = renderer.Render(p)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		log.Printf("Connecting to fractal server on %s (%s)...", *addr, *network)
		conn, err := dial(ctx, *network, *addr)
		if err != nil {
			return fmt.Errorf("failed to connect to server: %w", err)
		}

		log.Printf("Requesting %s from server...", p.Kind)
		img, err = renderRemote(ctx, conn, p)
		if err != nil {
			return fmt.Errorf("renderRemote: %w", err)
		}
	}

	log.Printf("Saving rendered image to %q...", *out)
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("Image saved to %q", *out)
	return nil
}

// buildParams overlays the flags that were set on the defaults for kind.
func buildParams(kind, c, region string, n, k int, cmap string) (fractals.Params, error) {
	p := fractals.DefaultParams(fractals.Kind(kind))
	p.Kind = fractals.Kind(kind)

	if c != "" {
		v, err := strconv.ParseComplex(c, 128)
		if err != nil {
			return p, fmt.Errorf("c: %w", err)
		}
		p.CRe, p.CIm = real(v), imag(v)
	}
	if region != "" {
		r, err := parseRegion(region)
		if err != nil {
			return p, fmt.Errorf("region: %w", err)
		}
		p.Region = r
	}
	if n != 0 {
		p.N = n
	}
	if k != 0 {
		p.K = k
	}
	if cmap != "" {
		p.Colormap = cmap
	}
	return p, p.Validate()
}
