//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"

	"review_corpus/data"
	server "review_corpus/internal/adapters/http_server"
	redisad "review_corpus/internal/adapters/redis"
	"review_corpus/internal/app"
	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
	mysqlrepo "review_corpus/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unreachable: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=reviews",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ingest -> MySQL -> corpus -> API, the path cmd/ingestor and cmd/api take
// with CORPUS_FROM_DB set.
func TestHTTP_EndToEnd_IngestedCorpus(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rep, err := app.NewIngestionService(repo, 3, 8).Ingest(ctx, "embedded", data.Reviews())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if rep.Records != 50 || rep.Batches != 7 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	// a bad source is rejected and leaves the published generation alone
	if _, err := app.NewIngestionService(repo, 3, 8).Ingest(ctx, "bad.json", []byte(`[{"review_text":"x"}]`)); err == nil {
		t.Fatal("expected rejection")
	}

	rs, err := repo.ListReviews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	c, err := corpus.New(rs)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	if c.Digest() != rep.Generation {
		t.Fatalf("digest %s != generation %s", c.Digest(), rep.Generation)
	}

	mr := miniredis.RunT(t)
	cache := redisad.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "e2e:")

	srv := server.New(0)
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(c, cache, time.Minute)})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/reviews/REV047")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var r domain.Review
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Text != "😒" {
		t.Fatalf("emoji not preserved through MySQL: %q", r.Text)
	}

	for i := 0; i < 2; i++ { // second round is served from redis
		res, err := http.Get(ts.URL + "/v1/reviews?q=" + url.QueryEscape("URL"))
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		var page domain.ReviewsPage
		err = json.NewDecoder(res.Body).Decode(&page)
		res.Body.Close()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != "REV017" {
			t.Fatalf("round %d: unexpected page %+v", i, page)
		}
	}
	if len(mr.Keys()) == 0 {
		t.Fatal("expected cached search pages in redis")
	}
}
