package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"review_corpus/internal/app"
	"review_corpus/internal/domain"
)

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func TestReadSource_Embedded(t *testing.T) {
	for _, src := range []string{"", "embedded"} {
		c, err := app.LoadCorpus(context.Background(), src, nil)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if c.Len() != 50 {
			t.Fatalf("%q: len %d", src, c.Len())
		}
	}
}

func TestReadSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := os.WriteFile(path, []byte(`[{"review_id":"X1","review_text":"Très bien 👍"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := app.LoadCorpus(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r, ok := c.Get("X1"); !ok || r.Text != "Très bien 👍" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := app.LoadCorpus(context.Background(), filepath.Join(t.TempDir(), "nope.js"), nil)
	if !errors.Is(err, app.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if app.FailureKind(err) != "source" {
		t.Fatalf("kind: %s", app.FailureKind(err))
	}
}

func TestReadSource_URL(t *testing.T) {
	f := &fakeFetcher{body: []byte(`reviews = [{"review_id":"R","review_text":""}]`)}
	c, err := app.LoadCorpus(context.Background(), "https://example.test/reviews.js", f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 1 || len(f.urls) != 1 {
		t.Fatalf("len=%d calls=%v", c.Len(), f.urls)
	}

	boom := errors.New("boom")
	_, err = app.LoadCorpus(context.Background(), "https://example.test/x", &fakeFetcher{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestLoadCorpus_ClassifiesFailures(t *testing.T) {
	dir := t.TempDir()
	dup := filepath.Join(dir, "dup.json")
	_ = os.WriteFile(dup, []byte(`[{"review_id":"A"},{"review_id":"A"}]`), 0o644)
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte{'[', 0xff, ']'}, 0o644)

	_, err := app.LoadCorpus(context.Background(), dup, nil)
	if !errors.Is(err, domain.ErrValidation) || app.FailureKind(err) != "validation" {
		t.Fatalf("dup: %v", err)
	}
	_, err = app.LoadCorpus(context.Background(), bad, nil)
	if !errors.Is(err, domain.ErrEncoding) || app.FailureKind(err) != "encoding" {
		t.Fatalf("bad: %v", err)
	}
}
