package app

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"review_corpus/internal/corpus"
	"review_corpus/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var ErrBadCursor = errors.New("invalid cursor")

/********** query → predicate **********/

func predicateFor(q domain.SearchQuery) corpus.Predicate {
	var ps []corpus.Predicate
	if q.Contains != "" {
		if q.IgnoreCase {
			ps = append(ps, corpus.TextContainsFold(q.Contains))
		} else {
			ps = append(ps, corpus.TextContains(q.Contains))
		}
	}
	if q.Empty != nil {
		if *q.Empty {
			ps = append(ps, corpus.EmptyText())
		} else {
			ps = append(ps, corpus.WithText())
		}
	}
	if len(q.IDs) > 0 {
		ps = append(ps, corpus.IDIn(q.IDs...))
	}
	if len(ps) == 0 {
		return nil
	}
	return corpus.And(ps...)
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

/********** cursors **********/

// Cursors are opaque to clients: base64url of the match offset.
func encodeCursor(offset int) *string {
	s := base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
	return &s
}

func decodeCursor(c *string) (int, error) {
	if c == nil || *c == "" {
		return 0, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(*c)
	if err != nil {
		return 0, ErrBadCursor
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(b), "o:"))
	if err != nil || n < 0 || !strings.HasPrefix(string(b), "o:") {
		return 0, ErrBadCursor
	}
	return n, nil
}

// searchKey: corpus digest + every query field, hashed to bound key length.
func searchKey(digest string, q domain.SearchQuery, offset, limit int) string {
	empty := "any"
	if q.Empty != nil {
		empty = strconv.FormatBool(*q.Empty)
	}
	sig := strings.Join([]string{
		q.Contains,
		strconv.FormatBool(q.IgnoreCase),
		empty,
		strings.Join(q.IDs, "\x1f"),
		strconv.Itoa(offset),
		strconv.Itoa(limit),
	}, "|")
	sum := sha1.Sum([]byte(sig))
	return fmt.Sprintf("search:%s:%s", digest, hex.EncodeToString(sum[:]))
}

/********** summary **********/

// Summarize counts records; it does not look into the text beyond its length.
func Summarize(seq iter.Seq[domain.Review]) domain.Summary {
	var s domain.Summary
	runes := 0
	for r := range seq {
		s.Total++
		n := r.Runes()
		if n == 0 {
			s.Empty++
		}
		runes += n
		if n > s.MaxRunes {
			s.MaxRunes = n
		}
	}
	s.NonEmpty = s.Total - s.Empty
	if s.Total > 0 {
		s.EmptyPct = round(float64(s.Empty)/float64(s.Total)*100, 2)
		s.NonEmptyPct = round(float64(s.NonEmpty)/float64(s.Total)*100, 2)
		s.MeanRunes = round(float64(runes)/float64(s.Total), 3)
	}
	return s
}

func round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}
