package shared_test

import (
	"testing"
	"time"

	"review_corpus/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CORPUS_SOURCE", "REDIS_ADDR", "INGEST_WORKERS", "CACHE_TTL_SECONDS", "CORPUS_FROM_DB"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.Source != shared.EmbeddedSource {
		t.Fatalf("source: %q", c.Source)
	}
	if c.RedisAddr != "" {
		t.Fatalf("redis should be disabled by default, got %q", c.RedisAddr)
	}
	if c.Workers != 4 || c.CacheTTL != 15*time.Minute || c.FromDB {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CORPUS_SOURCE", "data/reviews.js")
	t.Setenv("CORPUS_FROM_DB", "YES")
	t.Setenv("INGEST_BATCH_SIZE", "25")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	c := shared.Load()
	if c.Source != "data/reviews.js" || !c.FromDB || c.BatchSize != 25 || c.CacheTTL != time.Minute {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "many")
	t.Setenv("INGEST_BATCH_SIZE", "-3")
	c := shared.Load()
	if c.Workers != 4 {
		t.Fatalf("workers: %d", c.Workers)
	}
	if c.BatchSize != 100 {
		t.Fatalf("batch: %d", c.BatchSize)
	}
}
