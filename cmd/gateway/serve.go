package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/metrics"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/service"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/backend"
	mongostore "github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/db/mongo"
	redisstore "github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/db/redis"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/http/handlers"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/queue"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/pkg/config"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "condo-gateway",
	})

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongostore.Disconnect(mongoClient, shutdownTimeout); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	auditRepo := mongostore.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit index creation failed")
	}

	// The dispatcher outlives the request context so it can drain after the
	// server stops accepting requests.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, logger.Component("audit"),
		queue.WithObserver(metrics.AuditObserver{}))
	dispatcher.Start(auditCtx)

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, backend.WithObserver(metrics.ObserveBackend))
	store := redisstore.NewCredentialStore(rdb, cfg.SessionTTL)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Store:        store,
		Idempotency:  redisstore.NewIdempotencyGuard(rdb, cfg.IdempotencyTTL),
		Auth:         service.NewAuthService(client, store, logger.Component("auth")),
		Resources:    service.NewResourceService(client, dispatcher, logger.Component("resources")),
		FeePayments:  service.NewFeePaymentService(client, dispatcher, logger.Component("fees")),
		Dashboard:    service.NewDashboardService(client, logger.Component("dashboard")),
		Audit:        auditRepo,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		RateLimitRPS: cfg.RateLimitRPS,
		Checks: map[string]handlers.Check{
			"redis":   handlers.RedisCheck(rdb),
			"mongodb": handlers.MongoCheck(db),
			"backend": client.Ping,
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			stopAudit()
			dispatcher.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	stopAudit()
	dispatcher.Wait()
	log.Info().Msg("gateway stopped")
	return nil
}
