package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/albertshemyakin2009-sys/noolix/internal/app"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/envutil"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Failed to read .env: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Loading environment variables...")
	cfg := app.LoadConfig(log)

	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("Failed to init app", "error", err)
		return
	}
	defer a.Close()

	if report := a.Start(ctx); report != nil {
		log.Info("Startup topic repair done", "changed", report.Changed, "failed", report.Failed())
	}

	if err := a.Run(ctx); err != nil {
		log.Error("Server stopped with error", "error", err)
	}
}
