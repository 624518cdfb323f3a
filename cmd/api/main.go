package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "review_corpus/internal/adapters/http_server"
	"review_corpus/internal/adapters/observability"
	redisad "review_corpus/internal/adapters/redis"
	"review_corpus/internal/adapters/remote"
	"review_corpus/internal/app"
	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
	"review_corpus/internal/shared"
	mysqlrepo "review_corpus/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	c, err := loadCorpus(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("corpus load failed")
	}

	// cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, serving without cache")
		} else {
			cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
		}
	}
	q := app.NewQueryService(c, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.APIRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Int("records", c.Len()).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// loadCorpus reads the published snapshot from MySQL when CORPUS_FROM_DB is
// set, otherwise loads CORPUS_SOURCE directly.
func loadCorpus(ctx context.Context, cfg shared.Config) (*corpus.Corpus, error) {
	if !cfg.FromDB {
		return app.LoadCorpus(ctx, cfg.Source, remote.New(cfg.SourceToken, cfg.SourceRPS))
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	rs, err := repo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	c, err := corpus.New(rs)
	if err != nil {
		observability.ObserveLoadFailure(app.FailureKind(err))
		return nil, err
	}
	observability.ObserveCorpus(c.Len())
	log.Info().Int("records", c.Len()).Str("digest", c.Digest()).Msg("corpus loaded from database")
	return c, nil
}
