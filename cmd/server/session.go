package main

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/marben/fractals"
)

const tileSize = 64

// session holds the parameter state of one interactive client.
// Every parameter change recomputes the whole image.
type session struct {
	renderer fractals.Renderer

	params fractals.Params
	img    *image.RGBA
	seq    int
	m      sync.Mutex
}

func newSession(renderer fractals.Renderer) *session {
	return &session{renderer: renderer}
}

// update renders p and returns the frame announcing it along with the tiles to send.
// On failure the frame carries the error and the previous image stays current.
func (s *session) update(p fractals.Params) (fractals.Frame, *image.RGBA, []image.Rectangle) {
	s.m.Lock()
	defer s.m.Unlock()

	s.seq++
	frame := fractals.Frame{Seq: s.seq, Params: p}

	start := time.Now()
	img, err := s.renderer.Render(p)
	if err != nil {
		frame.Error = err.Error()
		return frame, nil, nil
	}
	elapsed := time.Since(start)

	s.params = p
	s.img = img

	tiles := splitRectNoClip(img.Bounds(), tileSize, tileSize)
	frame.Width = img.Bounds().Dx()
	frame.Height = img.Bounds().Dy()
	frame.Tiles = len(tiles)
	frame.ElapsedMs = float64(elapsed.Microseconds()) / 1000
	return frame, img, tiles
}

// Render implements fractals.Renderer for RPC clients. A successful render
// becomes the session's current image; concurrent calls render in parallel
// and the last one to finish wins.
func (s *session) Render(p fractals.Params) (*image.RGBA, error) {
	img, err := s.renderer.Render(p)
	if err != nil {
		return nil, err
	}

	s.m.Lock()
	defer s.m.Unlock()
	s.seq++
	s.params = p
	s.img = img
	return img, nil
}

// reject answers a message that could not be read as parameters.
func (s *session) reject(err error) fractals.Frame {
	s.m.Lock()
	defer s.m.Unlock()
	s.seq++
	return fractals.Frame{Seq: s.seq, Error: err.Error()}
}

// Image implements fractals.ImgProvider.
func (s *session) Image() (*image.RGBA, fractals.Params, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.img == nil {
		return nil, fractals.Params{}, fractals.ErrNoImage
	}
	return s.img, s.params, nil
}

var (
	_ fractals.Renderer    = (*session)(nil)
	_ fractals.ImgProvider = (*session)(nil)
)

// stats counts connected sessions and finished renders across the server.
type stats struct {
	sessions int
	renders  int
	m        sync.Mutex
}

func (st *stats) incSessions() {
	st.m.Lock()
	st.sessions++
	n := st.sessions
	st.m.Unlock()

	log.Printf("sessions: %d", n)
}

func (st *stats) decSessions() {
	st.m.Lock()
	st.sessions--
	n := st.sessions
	st.m.Unlock()

	log.Printf("sessions: %d", n)
}

func (st *stats) rendered() int {
	st.m.Lock()
	defer st.m.Unlock()
	st.renders++
	return st.renders
}

func (st *stats) snapshot() (sessions, renders int) {
	st.m.Lock()
	defer st.m.Unlock()
	return st.sessions, st.renders
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
