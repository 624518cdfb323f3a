package app

import (
	"context"
	"time"

	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
)

// QueryService answers read queries against one loaded corpus. cache may be nil.
type QueryService struct {
	corpus   *corpus.Corpus
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(c *corpus.Corpus, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{corpus: c, cache: cache, cacheTTL: ttl}
}

func (s *QueryService) GetReview(ctx context.Context, id string) (domain.Review, error) {
	r, ok := s.corpus.Get(id)
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *QueryService) Search(ctx context.Context, q domain.SearchQuery) (domain.ReviewsPage, error) {
	offset, err := decodeCursor(q.Cursor)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	limit := clampLimit(q.Limit)

	key := searchKey(s.corpus.Digest(), q, offset, limit)
	var out domain.ReviewsPage
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	out = domain.ReviewsPage{Items: []domain.Review{}}
	for r := range s.corpus.Filter(predicateFor(q)) {
		if out.Total >= offset && len(out.Items) < limit {
			out.Items = append(out.Items, r)
		}
		out.Total++
	}
	if out.Total > offset+limit {
		out.NextCursor = encodeCursor(offset + limit)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) Summary(ctx context.Context) domain.Summary {
	return Summarize(s.corpus.All())
}

// Digest identifies the served corpus (used for cache keys and ETags).
func (s *QueryService) Digest() string { return s.corpus.Digest() }
