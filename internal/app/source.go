package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"review_corpus/data"
	"review_corpus/internal/adapters/observability"
	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
	"review_corpus/internal/shared"
)

var ErrSourceNotFound = errors.New("corpus source not found")

// ReadSource returns the raw bytes named by src: the bundled dataset
// ("embedded" or empty), an http(s) URL fetched through f, or a file path.
func ReadSource(ctx context.Context, src string, f domain.SourceFetcher) ([]byte, error) {
	switch {
	case src == "" || src == shared.EmbeddedSource:
		return data.Reviews(), nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		if f == nil {
			return nil, fmt.Errorf("no fetcher configured for %s", src)
		}
		b, err := f.Fetch(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src, err)
		}
		return b, nil
	default:
		b, err := os.ReadFile(src)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return b, nil
	}
}

// LoadCorpus reads src and builds the corpus, recording the outcome in metrics.
func LoadCorpus(ctx context.Context, src string, f domain.SourceFetcher) (*corpus.Corpus, error) {
	raw, err := ReadSource(ctx, src, f)
	if err != nil {
		observability.ObserveLoadFailure(FailureKind(err))
		return nil, err
	}
	c, err := corpus.Load(raw)
	if err != nil {
		observability.ObserveLoadFailure(FailureKind(err))
		return nil, fmt.Errorf("load %s: %w", sourceName(src), err)
	}
	observability.ObserveCorpus(c.Len())
	log.Info().
		Str("source", sourceName(src)).
		Int("records", c.Len()).
		Str("digest", c.Digest()).
		Msg("corpus loaded")
	return c, nil
}

// FailureKind labels a load error for metrics and rejection logs.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrEncoding):
		return "encoding"
	default:
		return "source"
	}
}

func sourceName(src string) string {
	if src == "" {
		return shared.EmbeddedSource
	}
	return src
}
