package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"renteasy/internal/adapters/listings"
	"renteasy/internal/adapters/observability"
	redisad "renteasy/internal/adapters/redis"
	"renteasy/internal/app"
	"renteasy/internal/shared"
	mysqlrepo "renteasy/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ids := shared.LoadPropertyIDs()

	log.Info().
		Str("base", cfg.ListingsBase).
		Int("workers", cfg.Workers).
		Int("properties", len(ids)).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := listings.New(cfg.ListingsBase, cfg.ListingsKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize listings client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(client, repo, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range ids {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(propertyID int64) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := ing.IngestListing(ctx, propertyID); err != nil {
				log.Warn().Int64("id", propertyID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Int64("id", propertyID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
