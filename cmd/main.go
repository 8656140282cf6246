package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kosench/short-url/internal/config"
	"github.com/Kosench/short-url/internal/database"
	"github.com/Kosench/short-url/internal/handler"
	"github.com/Kosench/short-url/internal/logger"
	"github.com/Kosench/short-url/internal/repository"
	"github.com/Kosench/short-url/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "url-shortener: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DSN()

	if cfg.Database.Migrate {
		if err := database.Migrate(dsn); err != nil {
			return err
		}
		log.Info("database migrations applied")
	}

	db, err := database.Connect(ctx, dsn, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("successfully connected to database")

	urlRepo := repository.NewPostgresURLRepository(db, cfg.Database.QueryTimeout)
	urlService := service.NewURLService(urlRepo, cfg.GetBaseURL(), cfg.App.MaxRetries, log.Named("service"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(
		handler.NewURLHandler(urlService, log.Named("handler")),
		handler.NewHealthHandler(database.NewProbe(db), log.Named("health")),
		cfg.GetAllowedOrigins(),
		log.Named("http"),
	)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("base_url", cfg.GetBaseURL()),
			zap.String("environment", cfg.App.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}

	log.Info("server gracefully stopped")
	return nil
}
