package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vdrcandles/catalog/config"
	"github.com/vdrcandles/catalog/internal/app"
	"github.com/vdrcandles/catalog/internal/devserver"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		os.Exit(1)
	}

	cfg.Logger.DefaultLevel("info")

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = devserver.New(cfg.Web).Run(ctx)
	stop()
	if err != nil {
		zap.L().Error("dev server failed", zap.Error(err))
		application.Release()
		os.Exit(1)
	}
	application.Release()
}
