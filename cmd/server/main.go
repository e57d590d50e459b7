// Package main starts the talk catalog HTTP API.
//
//	@title			Talk Catalog API
//	@version		1.0
//	@description	Conference catalog of speakers, talks, tutorials and rooms.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"talkcatalog/config"
	_ "talkcatalog/docs"
	deliveryhttp "talkcatalog/internal/delivery/http"
	"talkcatalog/internal/delivery/http/controllers"
	"talkcatalog/internal/delivery/http/middleware"
	"talkcatalog/internal/domain"
	"talkcatalog/internal/repository/postgres"
	"talkcatalog/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.DBApplySchema {
		if err := postgres.ApplySchema(ctx, db); err != nil {
			return err
		}
		logger.Info("schema applied")
	}

	gdb, err := postgres.OpenGorm(db)
	if err != nil {
		return err
	}

	uow := postgres.NewUnitOfWork(db)
	speakerService := services.NewSpeakerService(
		uow,
		postgres.NewGormProjectionRepository(gdb),
		services.NewFallbackPolicy(cfg.FallbackSpeakerID),
		logger,
		cfg.DBQueryTimeout,
	)
	talkService := services.NewTalkService(uow, logger, cfg.DBQueryTimeout)
	roomService := services.NewRoomService(uow, domain.RoomDeletePolicy(cfg.RoomDeletePolicy), logger, cfg.DBQueryTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewSpeakerController(logger, speakerService),
		controllers.NewTalkController(logger, talkService),
		controllers.NewRoomController(logger, roomService),
	)
	handler := middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
