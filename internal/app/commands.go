package app

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_corpus/internal/adapters/observability"
	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
)

type IngestionService struct {
	repo      domain.ReviewRepository
	workers   int
	batchSize int
}

func NewIngestionService(r domain.ReviewRepository, workers, batchSize int) *IngestionService {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IngestionService{repo: r, workers: workers, batchSize: batchSize}
}

type IngestReport struct {
	Generation string
	Records    int
	Batches    int
}

// Ingest validates raw as a whole and, only if it loads, publishes it as the
// current generation. A rejected source is logged and nothing is written.
func (s *IngestionService) Ingest(ctx context.Context, source string, raw []byte) (IngestReport, error) {
	c, err := corpus.Load(raw)
	if err != nil {
		observability.ObserveLoadFailure(FailureKind(err))
		if lerr := s.repo.LogRejection(ctx, source, err.Error()); lerr != nil {
			log.Warn().Err(lerr).Str("source", source).Msg("log rejection failed")
		}
		return IngestReport{}, fmt.Errorf("load %s: %w", source, err)
	}
	return s.Publish(ctx, c)
}

// Publish writes c under its digest in parallel batches, then switches
// readers to it in one step and drops older generations.
func (s *IngestionService) Publish(ctx context.Context, c *corpus.Corpus) (IngestReport, error) {
	gen := c.Digest()
	records := slices.Collect(c.All())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(s.workers))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		batches  int
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for off := 0; off < len(records); off += s.batchSize {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			fail(err)
			break
		}
		batch := records[off:min(off+s.batchSize, len(records))]
		batches++

		wg.Add(1)
		go func(off int, batch []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertReviews(ctx, gen, off, batch); err != nil {
				fail(fmt.Errorf("upsert batch at %d: %w", off, err))
				return
			}
			log.Debug().Int("offset", off).Int("size", len(batch)).Msg("batch written")
		}(off, batch)
	}
	wg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return IngestReport{}, err
	}

	if err := s.repo.PublishGeneration(ctx, gen, len(records)); err != nil {
		return IngestReport{}, fmt.Errorf("publish generation %s: %w", gen, err)
	}
	// readers already see the new generation; a failed prune only leaves garbage
	if err := s.repo.PruneGenerations(ctx, gen); err != nil {
		log.Warn().Err(err).Str("generation", gen).Msg("prune old generations failed")
	}

	observability.ObserveIngested(len(records))
	return IngestReport{Generation: gen, Records: len(records), Batches: batches}, nil
}
