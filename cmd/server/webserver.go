package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/marben/fractals"
	"github.com/marben/fractals/colormap"
)

//go:embed static
var staticFiles embed.FS

// /render.png is answered inside the http handler, so it gets a smaller
// budget than an interactive session.
const (
	maxPNGResolution = 1024
	maxPNGWork       = 1 << 27 // n·n·k
)

var errTooExpensive = errors.New("too expensive for /render.png")

// webServer creates server serving the embedded ./static folder,
// the websocket endpoints and the stateless PNG endpoint.
// The returned listener yields the connections upgraded on /rpc.
func webServer(ctx context.Context, port int, origins []string, renderer fractals.Renderer, st *stats) (*WebsocketListener, *http.Server) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded at build time
	}

	l := NewWSListener(ctx, fmt.Sprintf(":%d/rpc", port))
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(origins, renderer, st))
	mux.HandleFunc("/rpc", rpcHandler(l, origins))
	mux.HandleFunc("/render.png", pngHandler(renderer))
	mux.HandleFunc("/meta", metaHandler(st))
	mux.Handle("/", http.FileServer(http.FS(static)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return l, srv
}

// websocketHandler runs one interactive session per connection.
// Every Params message is answered with a Frame followed by its tiles.
func websocketHandler(origins []string, renderer fractals.Renderer, st *stats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		st.incSessions()
		defer st.decSessions()

		s := newSession(renderer)
		err = serveSession(r.Context(), c, s)
		if _, p, imgErr := s.Image(); imgErr == nil {
			log.Printf("session from %s closed, last view: %s %+v", r.RemoteAddr, p.Kind, p.Region)
		}
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("session from %s: %v", r.RemoteAddr, err)
		}
	}
}

// serveSession returns only on transport errors. A message that does not
// decode as Params is answered with an error frame.
func serveSession(ctx context.Context, c *websocket.Conn, s *session) error {
	for {
		_, b, err := c.Read(ctx)
		if err != nil {
			return fmt.Errorf("read params: %w", err)
		}

		var (
			p     fractals.Params
			frame fractals.Frame
			img   *image.RGBA
			tiles []image.Rectangle
		)
		if err := json.Unmarshal(b, &p); err != nil {
			frame = s.reject(fmt.Errorf("decode params: %w", err))
		} else {
			frame, img, tiles = s.update(p)
		}

		if err := wsjson.Write(ctx, c, frame); err != nil {
			return fmt.Errorf("write frame %d: %w", frame.Seq, err)
		}
		for _, t := range tiles {
			if err := c.Write(ctx, websocket.MessageBinary, fractals.EncodeTile(img, t)); err != nil {
				return fmt.Errorf("write tile %s: %w", t, err)
			}
		}
	}
}

// rpcHandler upgrades the request and passes the websocket to l,
// where the irpc server accepts it.
func rpcHandler(l *WebsocketListener, origins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			log.Println(err)
			return
		}

		if err := l.push(c); err != nil {
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

// pngHandler renders the fractal described by the query string as a PNG.
func pngHandler(renderer fractals.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := paramsFromQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := checkPNGCost(p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		img, err := renderer.Render(p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Printf("png.Encode: %v", err)
		}
	}
}

func checkPNGCost(p fractals.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.N > maxPNGResolution {
		return fmt.Errorf("n = %d exceeds %d: %w", p.N, maxPNGResolution, errTooExpensive)
	}
	if work := p.N * p.N * p.K; work > maxPNGWork {
		return fmt.Errorf("n·n·k = %d exceeds %d: %w", work, maxPNGWork, errTooExpensive)
	}
	return nil
}

type meta struct {
	Regions   map[string]fractals.Region `json:"regions"`
	Colormaps []string                   `json:"colormaps"`
	Defaults  map[string]fractals.Params `json:"defaults"`
	Limits    map[string]int             `json:"limits"`
	Sessions  int                        `json:"sessions"`
	Renders   int                        `json:"renders"`
}

// metaHandler describes what the server accepts, for populating the UI pickers.
func metaHandler(st *stats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regions := make(map[string]fractals.Region)
		for _, name := range fractals.RegionNames() {
			regions[name], _ = fractals.RegionByName(name)
		}
		sessions, renders := st.snapshot()

		m := meta{
			Regions:   regions,
			Colormaps: colormap.Names(),
			Defaults: map[string]fractals.Params{
				string(fractals.KindJulia):      fractals.DefaultParams(fractals.KindJulia),
				string(fractals.KindMandelbrot): fractals.DefaultParams(fractals.KindMandelbrot),
			},
			Limits: map[string]int{
				"minN":       fractals.MinResolution,
				"maxN":       fractals.MaxResolution,
				"minK":       fractals.MinIterations,
				"maxK":       fractals.MaxIterations,
				"maxPNGN":    maxPNGResolution,
				"maxPNGWork": maxPNGWork,
			},
			Sessions: sessions,
			Renders:  renders,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(m); err != nil {
			log.Printf("meta: %v", err)
		}
	}
}

// WebsocketListener implements net.Listener
// it's a wrapper around websocket.Conn
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// push blocks until c is accepted or the listener is closed.
func (l *WebsocketListener) push(c *websocket.Conn) error {
	select {
	case l.ch <- c:
		return nil
	case <-l.ctx.Done():
		return net.ErrClosed
	}
}

// Accept wraps the next pushed websocket as a net.Conn carrying binary messages.
// Closing the listener closes every connection it handed out.
func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
