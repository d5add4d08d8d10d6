package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jaeyoung-oh/parkrate/internal/common"
	"github.com/jaeyoung-oh/parkrate/internal/export"
	"github.com/jaeyoung-oh/parkrate/internal/ocrparse"
	"github.com/jaeyoung-oh/parkrate/internal/repository"
	"github.com/jaeyoung-oh/parkrate/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.HealthCheck(ctx, db, 3*time.Second, logger); err != nil {
		logger.Error("database health failed", "error", err)
		os.Exit(1)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Error("applying schema", "error", err)
		os.Exit(1)
	}

	parser := ocrparse.NewParser(ocrparse.Config{
		SameRowYThreshold:  cfg.Parser.SameRowYThreshold,
		ExcessUnitMinutes:  cfg.Parser.ExcessUnitMinutes,
		AssumedBaseMinutes: cfg.Parser.AssumedBaseMinutes,
	}, logger)

	svc := server.NewService(
		repository.NewLotRepository(db, logger),
		repository.NewSessionRepository(db, logger),
		parser,
		export.NewService(logger),
		logger,
	)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.NewRouter(svc),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
