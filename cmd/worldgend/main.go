// Command worldgend serves the deterministic world-generation pipeline over
// HTTP: a bearer-auth-guarded /v1/generate endpoint, Prometheus metrics, and
// optional Postgres/Redis/NATS backing services that degrade gracefully
// when unavailable.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"worldgen-engine/internal/cache"
	"worldgen-engine/internal/events"
	"worldgen-engine/internal/httpapi"
	"worldgen-engine/internal/store"
)

func main() {
	httpapi.InitLogger()
	log.Info().Msg("starting worldgend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := httpapi.Deps{
		JWTSecret: []byte(getenv("JWT_SECRET", "dev-secret-change-me-32-bytes-min")),
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		s, err := store.Connect(ctx, dsn)
		if err != nil {
			log.Warn().Err(err).Msg("postgres unavailable, run persistence disabled")
		} else {
			if err := s.EnsureSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to ensure postgres schema")
			}
			deps.Store = s
			defer s.Close()
		}
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c := cache.New(addr, 24*time.Hour)
		if err := c.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, checksum cache disabled")
		} else {
			deps.Cache = c
			defer c.Close()
		}
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		pub, err := events.Connect(url)
		if err != nil {
			log.Warn().Err(err).Msg("nats unavailable, event publishing disabled")
		} else {
			deps.Events = pub
			defer pub.Close()
		}
	}

	if deps.Store != nil {
		c := cron.New()
		_, err := c.AddFunc("0 3 * * *", func() {
			n, err := deps.Store.PruneOlderThan(ctx, 30*24*time.Hour)
			if err != nil {
				log.Error().Err(err).Msg("nightly prune failed")
				return
			}
			log.Info().Int64("rows_deleted", n).Msg("nightly prune complete")
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to schedule nightly prune")
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	addr := getenv("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewRouter(deps),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
