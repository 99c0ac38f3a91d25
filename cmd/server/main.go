package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/config"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/infra"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/router"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
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

	store, err := newStore(cfg, rdb)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open local storage")
	}

	// The pool only mails the monthly summary; the mailer is shared with /health.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	if !mailer.Configurado() {
		log.Warn().Msg("SMTP_HOST vacío: el resumen mensual por correo quedará en la DLQ")
	}
	worker.NewPool(rdb, map[string]worker.Handler{
		worker.JobResumenEmail: worker.NewEmailWorker(mailer).Process,
	}).Start(ctx, cfg.WorkerPoolSize)

	autosave := worker.NewAutosave(cfg.AutosaveDelay())

	r := router.New(cfg, router.Deps{
		DB:       db,
		Store:    store,
		Redis:    rdb,
		Mailer:   mailer,
		Autosave: autosave,
		Location: time.Local,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Arqueo de caja listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	// pending drafts are dropped, not flushed
	autosave.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

func newStore(cfg *config.Config, rdb *redis.Client) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "redis":
		return storage.NewRedis(rdb, cfg.StoragePrefix), nil
	case "sqlite":
		db, err := infra.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storage.NewSQL(db)
	case "memory":
		log.Warn().Msg("STORAGE_DRIVER=memory: los registros se pierden al reiniciar")
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.StorageDriver)
	}
}
