package corpus

import (
	"strings"

	"golang.org/x/text/cases"

	"review_corpus/internal/domain"
)

// safe for concurrent use
var folder = cases.Fold()

// Predicate selects records for Filter.
type Predicate func(domain.Review) bool

func TextContains(sub string) Predicate {
	return func(r domain.Review) bool { return strings.Contains(r.Text, sub) }
}

// TextContainsFold matches sub under Unicode case folding ("url" finds "URL",
// "É" finds "é", "STRASSE" finds "straße").
func TextContainsFold(sub string) Predicate {
	sub = folder.String(sub)
	return func(r domain.Review) bool { return strings.Contains(folder.String(r.Text), sub) }
}

func EmptyText() Predicate {
	return func(r domain.Review) bool { return !r.HasText() }
}

func WithText() Predicate {
	return func(r domain.Review) bool { return r.HasText() }
}

func IDIn(ids ...string) Predicate {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(r domain.Review) bool {
		_, ok := set[r.ID]
		return ok
	}
}

// And accepts a record when every predicate does; nil entries are skipped.
func And(ps ...Predicate) Predicate {
	return func(r domain.Review) bool {
		for _, p := range ps {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

func Not(p Predicate) Predicate {
	return func(r domain.Review) bool { return !p(r) }
}
