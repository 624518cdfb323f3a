package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"review_corpus/internal/adapters/remote"
)

const payload = `reviews = [{"review_id": "REV001", "review_text": "Excellent produit"}]`

func TestFetch_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("authorization header: %q", got)
			}
			_, _ = w.Write([]byte(payload))
		}
	}))
	defer ts.Close()

	cl := remote.New("secret", 100) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.Fetch(ctx, ts.URL+"/reviews.js")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("unexpected payload: %q", got)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestFetch_RetryAfterZeroSeconds(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer ts.Close()

	got, err := remote.New("", 100).Fetch(context.Background(), ts.URL)
	if err != nil || string(got) != "[]" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestFetch_StatusSentinels(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:     remote.ErrNotFound,
		http.StatusUnauthorized: remote.ErrUnauthorized,
		http.StatusForbidden:    remote.ErrForbidden,
	}
	for status, want := range cases {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := remote.New("", 100).Fetch(context.Background(), ts.URL)
		ts.Close()
		if !errors.Is(err, want) {
			t.Fatalf("status %d: got %v want %v", status, err, want)
		}
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := remote.New("", 100).Fetch(ctx, ts.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
