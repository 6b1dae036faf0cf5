package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/config"
	"github.com/vdrcandles/catalog/internal/app"
	"github.com/vdrcandles/catalog/internal/shell"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

// run drives one shell session and returns the process exit code.
func run(ctx context.Context, in io.Reader, out io.Writer) int {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(out, "✗ Error: %v\n", err)
		return 1
	}
	// the menu owns stdout; keep routine logging out of the way unless asked
	cfg.Logger.DefaultLevel("warn")

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(out, "✗ Error: %v\n", err)
		return 1
	}
	defer application.Release()

	store := application.NewStore()
	sh, err := shell.New(store, in, out,
		shell.WithColor(isTerminal(out)),
		shell.WithTitle(fmt.Sprintf("%s - PRODUCT MANAGER", cases.Upper(language.English).String(cfg.Catalog.BrandName))),
	)
	if err != nil {
		fmt.Fprintf(out, "\n✗ Error: %v\n", err)
		return 1
	}

	if err := store.Load(); err != nil {
		zap.L().Error("load catalog", zap.Error(err))
		fmt.Fprintf(out, "\n✗ Error: %v\n", err)
		return 1
	}

	err = sh.Run(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, shell.ErrInterrupted):
		fmt.Fprintln(out, "\n\nExiting...")
		return 0
	default:
		zap.L().Error("product manager stopped", zap.Error(err))
		fmt.Fprintf(out, "\n✗ Error: %v\n", err)
		return 1
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
