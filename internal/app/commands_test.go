package app_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"review_corpus/data"
	"review_corpus/internal/app"
	"review_corpus/internal/domain"
)

type upsertCall struct {
	gen    string
	offset int
	batch  []domain.Review
}

type fakeRepo struct {
	mu         sync.Mutex
	upserts    []upsertCall
	published  map[string]int
	pruned     []string
	rejections []string
	failAt     int // offset whose batch fails; -1 for none
}

func newFakeRepo() *fakeRepo { return &fakeRepo{published: map[string]int{}, failAt: -1} }

func (f *fakeRepo) UpsertReviews(ctx context.Context, gen string, offset int, rs []domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset == f.failAt {
		return errors.New("deadlock found")
	}
	f.upserts = append(f.upserts, upsertCall{gen: gen, offset: offset, batch: append([]domain.Review(nil), rs...)})
	return nil
}
func (f *fakeRepo) PublishGeneration(ctx context.Context, gen string, records int) error {
	f.published[gen] = records
	return nil
}
func (f *fakeRepo) PruneGenerations(ctx context.Context, keep string) error {
	f.pruned = append(f.pruned, keep)
	return nil
}
func (f *fakeRepo) LogRejection(ctx context.Context, source, reason string) error {
	f.rejections = append(f.rejections, source+": "+reason)
	return nil
}
func (f *fakeRepo) ListReviews(ctx context.Context) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := append([]upsertCall(nil), f.upserts...)
	sort.Slice(calls, func(i, j int) bool { return calls[i].offset < calls[j].offset })
	var out []domain.Review
	for _, c := range calls {
		out = append(out, c.batch...)
	}
	return out, nil
}

func TestIngest_WritesBatchesThenPublishes(t *testing.T) {
	repo := newFakeRepo()
	ing := app.NewIngestionService(repo, 3, 8)

	rep, err := ing.Ingest(context.Background(), "embedded", data.Reviews())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if rep.Records != 50 || rep.Batches != 7 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if repo.published[rep.Generation] != 50 {
		t.Fatalf("generation not published: %+v", repo.published)
	}
	if len(repo.pruned) != 1 || repo.pruned[0] != rep.Generation {
		t.Fatalf("prune: %v", repo.pruned)
	}

	// batches reassemble into the original order
	got, _ := repo.ListReviews(context.Background())
	if len(got) != 50 || got[0].ID != "REV001" || got[49].ID != "REV050" {
		t.Fatalf("reassembled %d records", len(got))
	}
	for _, c := range repo.upserts {
		if c.gen != rep.Generation {
			t.Fatalf("batch at %d written under %s", c.offset, c.gen)
		}
	}
}

func TestIngest_RejectsInvalidSourceWithoutWriting(t *testing.T) {
	repo := newFakeRepo()
	ing := app.NewIngestionService(repo, 2, 10)

	src := `[{"review_id":"A","review_text":"x"},{"review_id":"A","review_text":"y"}]`
	_, err := ing.Ingest(context.Background(), "dup.json", []byte(src))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.upserts) != 0 || len(repo.published) != 0 {
		t.Fatalf("nothing should be written: %+v", repo)
	}
	if len(repo.rejections) != 1 || !strings.HasPrefix(repo.rejections[0], "dup.json: ") {
		t.Fatalf("rejection not logged: %v", repo.rejections)
	}
}

func TestIngest_BatchFailureDoesNotPublish(t *testing.T) {
	repo := newFakeRepo()
	repo.failAt = 10
	ing := app.NewIngestionService(repo, 2, 10)

	_, err := ing.Ingest(context.Background(), "embedded", data.Reviews())
	if err == nil || !strings.Contains(err.Error(), "upsert batch at 10") {
		t.Fatalf("expected batch error, got %v", err)
	}
	if len(repo.published) != 0 {
		t.Fatalf("failed ingest must not publish: %v", repo.published)
	}
}

func TestIngest_EmptyCorpusPublishesZero(t *testing.T) {
	repo := newFakeRepo()
	rep, err := app.NewIngestionService(repo, 1, 10).Ingest(context.Background(), "empty", []byte("[]"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if rep.Batches != 0 || repo.published[rep.Generation] != 0 {
		t.Fatalf("unexpected: %+v %+v", rep, repo.published)
	}
	if _, ok := repo.published[rep.Generation]; !ok {
		t.Fatalf("empty generation should still be published")
	}
}
