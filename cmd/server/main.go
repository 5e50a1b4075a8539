package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/config"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/infra"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/router"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async jobs (cost snapshot refresh, comanda PDF + email).
	// Handlers are wired here (composition root) so that the pool has full
	// access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := pricing.New(repository.NewCatalogoReader(db))
	receitaRepo := repository.NewReceitaRepository(db)
	comboRepo := repository.NewComboRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	pool := worker.NewPool(
		rdb,
		worker.NewRecustoWorker(engine, receitaRepo, comboRepo),
		worker.NewComandaWorker(pedidoRepo, mailer, smtpCB, rdb, cfg.PDFStoragePath),
	)
	pool.Start(ctx, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("mensura backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
