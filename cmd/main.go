package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/niklvrr/EmToolBackend/internal/app"
	"github.com/niklvrr/EmToolBackend/internal/config"
	"github.com/niklvrr/EmToolBackend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "emtool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Конфиг
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return err
	}

	// Логгер
	log, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище, сервисы, роутер
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init app", zap.Error(err))
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
