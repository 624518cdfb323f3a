package domain

import "context"

type ReviewRepository interface {
	// Write paths
	UpsertReviews(ctx context.Context, generation string, offset int, rs []Review) error
	PublishGeneration(ctx context.Context, generation string, records int) error
	PruneGenerations(ctx context.Context, keep string) error
	LogRejection(ctx context.Context, source string, reason string) error

	// Read paths
	ListReviews(ctx context.Context) ([]Review, error)
}

// SourceFetcher supplies raw corpus bytes from a remote location.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries
type SearchQuery struct {
	Contains   string
	IgnoreCase bool
	Empty      *bool // nil: any; true: only empty texts; false: only commented
	IDs        []string
	Limit      int
	Cursor     *string
}

type ReviewsPage struct {
	Items      []Review `json:"items"`
	Total      int      `json:"total"` // matches across all pages
	NextCursor *string  `json:"next_cursor,omitempty"`
}

type Summary struct {
	Total       int     `json:"total"`
	Empty       int     `json:"empty"`
	NonEmpty    int     `json:"non_empty"`
	EmptyPct    float64 `json:"empty_pct"`
	NonEmptyPct float64 `json:"non_empty_pct"`
	MeanRunes   float64 `json:"mean_runes"`
	MaxRunes    int     `json:"max_runes"`
}
