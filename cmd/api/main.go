package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go-empledger/internal/app"
	"go-empledger/internal/bootstrap"
	"go-empledger/internal/config"
	"go-empledger/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// build dependency + routes
	application, err := app.BuildApp(ctx, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer application.Close()

	err = bootstrap.StartHTTPServer(
		ctx,
		application.Router,
		bootstrap.ServerConfig{
			Port:            cfg.Port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    cfg.RequestTimeout + 5*time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(),
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
