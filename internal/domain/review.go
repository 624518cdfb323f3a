package domain

import "unicode/utf8"

// Review is one corpus entry. It is a plain value: copies handed to
// consumers never alias the corpus storage.
type Review struct {
	ID   string `json:"review_id"`
	Text string `json:"review_text"`
}

// HasText reports whether the reviewer left a comment. An empty text is a
// valid record ("no comment given").
func (r Review) HasText() bool { return r.Text != "" }

// Runes is the text length in code points (emoji count as one each).
func (r Review) Runes() int { return utf8.RuneCountInString(r.Text) }
