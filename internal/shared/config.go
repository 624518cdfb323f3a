package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// EmbeddedSource selects the dataset bundled with the binary.
const EmbeddedSource = "embedded"

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string // empty disables the query cache
	RedisDB       int
	RedisPass     string
	Source        string // embedded | file path | http(s) URL
	SourceToken   string // bearer token for http(s) sources
	FromDB        bool   // api: read the published corpus from MySQL instead of Source
	SourceRPS     int
	APIRPS        int
	Workers       int
	BatchSize     int
	CacheTTL      time.Duration
	OutputCSV     string
	OutputSummary string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		Source:        env("CORPUS_SOURCE", EmbeddedSource),
		SourceToken:   env("CORPUS_SOURCE_TOKEN", ""),
		FromDB:        truthy(env("CORPUS_FROM_DB", "false")),
		SourceRPS:     atoi("SOURCE_RPS", 5),
		APIRPS:        atoi("API_RPS", 50),
		Workers:       atoi("INGEST_WORKERS", 4),
		BatchSize:     atoi("INGEST_BATCH_SIZE", 100),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		OutputCSV:     env("OUTPUT_CSV", "output/reviews.csv"),
		OutputSummary: env("OUTPUT_SUMMARY", "output/summary.json"),
	}
	if c.Workers <= 0 {
		log.Warn().Int("workers", c.Workers).Msg("INGEST_WORKERS must be positive, using 1")
		c.Workers = 1
	}
	if c.BatchSize <= 0 {
		log.Warn().Int("batch", c.BatchSize).Msg("INGEST_BATCH_SIZE must be positive, using 100")
		c.BatchSize = 100
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
