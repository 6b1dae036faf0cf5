package devserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server serves a directory over HTTP for local preview.
type Server struct {
	echo        *echo.Echo
	addr        string
	out         io.Writer
	openBrowser bool
	opener      func(url string) error
}

type Option func(*Server)

// WithOutput redirects the startup banner and guidance text.
func WithOutput(w io.Writer) Option {
	return func(s *Server) { s.out = w }
}

// WithOpener replaces the browser launcher.
func WithOpener(fn func(url string) error) Option {
	return func(s *Server) { s.opener = fn }
}

func New(cfg config.WebConfig, opts ...Option) *Server {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(NoCache())
	e.Use(RequestLogger())
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:   root,
		Index:  "index.html",
		Browse: true,
	}))

	s := &Server{
		echo:        e,
		addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		out:         os.Stdout,
		openBrowser: cfg.OpenBrowser,
		opener:      OpenBrowser,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler exposes the request pipeline without a listener.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Listen binds the TCP listener. Run calls it when it has not been called.
func (s *Server) Listen() error {
	if s.echo.Listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	s.echo.Listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.echo.Listener == nil {
		return nil
	}
	return s.echo.Listener.Addr()
}

// URL is the browsable address of the server.
func (s *Server) URL() string {
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d", tcp.Port)
	}
	return "http://localhost" + s.addr
}

// Run serves until ctx is cancelled and then shuts down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	url := s.URL()
	s.printBanner(url)
	s.launchBrowser(url)
	zap.L().Info("dev server started", zap.String("addr", s.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	zap.L().Info("dev server stopped")
	fmt.Fprintf(s.out, "\n\n✓ Server stopped. Goodbye!\n")
	return err
}

func (s *Server) printBanner(url string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "╔════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(s.out, "║   VDR Candle Crafts - Development Server                  ║")
	fmt.Fprintf(s.out, "║   Serving at: %-43s ║\n", url)
	fmt.Fprintln(s.out, "║   Press Ctrl+C to stop the server                         ║")
	fmt.Fprintln(s.out, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(s.out)
}

func (s *Server) launchBrowser(url string) {
	if !s.openBrowser || s.opener == nil {
		fmt.Fprintf(s.out, "→ Please open your browser and go to: %s\n\n", url)
		return
	}
	if err := s.opener(url); err != nil {
		zap.L().Debug("browser launch failed", zap.Error(err))
		fmt.Fprintf(s.out, "→ Please open your browser and go to: %s\n\n", url)
		return
	}
	fmt.Fprintf(s.out, "→ Opening browser automatically...\n\n")
}
