package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_corpus/internal/adapters/observability"
	"review_corpus/internal/adapters/remote"
	"review_corpus/internal/app"
	"review_corpus/internal/shared"
	mysqlrepo "review_corpus/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Str("source", cfg.Source).
		Int("workers", cfg.Workers).
		Int("batch", cfg.BatchSize).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// 2) read the whole source; nothing is written unless it all validates
	raw, err := app.ReadSource(ctx, cfg.Source, remote.New(cfg.SourceToken, cfg.SourceRPS))
	if err != nil {
		log.Fatal().Err(err).Msg("read source failed")
	}

	ing := app.NewIngestionService(repo, cfg.Workers, cfg.BatchSize)
	rep, err := ing.Ingest(ctx, cfg.Source, raw)
	if err != nil {
		log.Fatal().Err(err).Str("kind", app.FailureKind(err)).Msg("ingestion rejected")
	}

	log.Info().
		Str("generation", rep.Generation).
		Int("records", rep.Records).
		Int("batches", rep.Batches).
		Msg("ingestion completed")
}
