// Package corpus holds the ordered, read-only collection of review records.
//
// A Corpus is built once by Load (or New) and never changes afterwards, so
// any number of goroutines may read it without locking. Construction is
// all-or-nothing: an invalid source yields an error and a nil corpus.
package corpus

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"iter"

	"review_corpus/internal/domain"
)

type Corpus struct {
	records []domain.Review
	index   map[string]int
	digest  string
}

// Load decodes src and validates the result. See Decode for accepted layouts.
func Load(src []byte) (*Corpus, error) {
	rs, err := Decode(src)
	if err != nil {
		return nil, err
	}
	return New(rs)
}

// New validates already-decoded records: every review_id must be non-empty
// and unique. The input slice is copied.
func New(records []domain.Review) (*Corpus, error) {
	c := &Corpus{
		records: make([]domain.Review, len(records)),
		index:   make(map[string]int, len(records)),
	}
	h := sha1.New()
	for i, r := range records {
		if r.ID == "" {
			return nil, &domain.ValidationError{Index: i, Reason: "empty " + fieldID}
		}
		if first, dup := c.index[r.ID]; dup {
			return nil, &domain.ValidationError{
				Index:  i,
				ID:     r.ID,
				Reason: fmt.Sprintf("duplicate %s (first seen at record %d)", fieldID, first),
			}
		}
		c.index[r.ID] = i
		c.records[i] = r
		// length-prefixed so ("ab","c") and ("a","bc") differ
		fmt.Fprintf(h, "%d:%s%d:%s", len(r.ID), r.ID, len(r.Text), r.Text)
	}
	c.digest = hex.EncodeToString(h.Sum(nil))
	return c, nil
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Get looks a record up by exact review_id. ok is false on a lookup miss.
func (c *Corpus) Get(id string) (r domain.Review, ok bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Review{}, false
	}
	return c.records[i], true
}

// All yields every record in source order. Each call starts a fresh pass.
func (c *Corpus) All() iter.Seq[domain.Review] {
	return func(yield func(domain.Review) bool) {
		for _, r := range c.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Filter yields, in source order, the records accepted by p.
// A nil predicate accepts everything.
func (c *Corpus) Filter(p Predicate) iter.Seq[domain.Review] {
	if p == nil {
		return c.All()
	}
	return func(yield func(domain.Review) bool) {
		for _, r := range c.records {
			if p(r) && !yield(r) {
				return
			}
		}
	}
}

// Digest identifies the corpus content (ids, texts and their order).
func (c *Corpus) Digest() string { return c.digest }
