package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"review_corpus/internal/domain"
)

const (
	fieldID   = "review_id"
	fieldText = "review_text"
)

var (
	bom = []byte{0xEF, 0xBB, 0xBF}
	// start of `reviews = [...]` as found in data/reviews.js
	jsAssignment = regexp.MustCompile(`\breviews\s*=\s*\[`)
)

// Decode turns a serialized record list into reviews, in source order.
// It checks shape only (object records, string fields, review_id present);
// identifier rules are enforced by New.
func Decode(src []byte) ([]domain.Review, error) {
	if off := invalidUTF8(src); off >= 0 {
		return nil, &domain.EncodingError{Offset: int64(off), Reason: "invalid UTF-8"}
	}
	body, script, err := recordList(bytes.TrimPrefix(src, bom))
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if script {
		// stop at the bracket closing the list; later script text is ignored
		err = json.NewDecoder(bytes.NewReader(body)).Decode(&raws)
	} else {
		err = json.Unmarshal(body, &raws)
	}
	if err != nil {
		return nil, jsonError(err)
	}

	out := make([]domain.Review, 0, len(raws))
	for i, raw := range raws {
		r, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// recordList strips the optional `reviews = ` JavaScript envelope. script
// reports whether the list is followed by arbitrary script text.
func recordList(src []byte) (body []byte, script bool, err error) {
	trimmed := bytes.TrimSpace(src)
	if len(trimmed) == 0 {
		return nil, false, &domain.EncodingError{Offset: -1, Reason: "empty source"}
	}
	if trimmed[0] == '[' {
		return trimmed, false, nil
	}
	m := jsAssignment.FindIndex(trimmed)
	if m == nil {
		return nil, false, &domain.EncodingError{Offset: -1, Reason: "no review list found (want a JSON array or `reviews = [...]`)"}
	}
	return trimmed[m[1]-1:], true, nil
}

func decodeRecord(i int, raw json.RawMessage) (domain.Review, error) {
	if isNull(raw) {
		return domain.Review{}, &domain.ValidationError{Index: i, Reason: "record is null"}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Review{}, &domain.ValidationError{Index: i, Reason: "record is not an object"}
	}

	rawID, ok := fields[fieldID]
	if !ok || isNull(rawID) {
		return domain.Review{}, &domain.ValidationError{Index: i, Reason: "missing " + fieldID}
	}
	var r domain.Review
	if err := json.Unmarshal(rawID, &r.ID); err != nil {
		return domain.Review{}, &domain.ValidationError{Index: i, Reason: fieldID + " must be a string"}
	}

	// absent or null text means "no comment given"
	if rawText, ok := fields[fieldText]; ok && !isNull(rawText) {
		if err := json.Unmarshal(rawText, &r.Text); err != nil {
			return domain.Review{}, &domain.ValidationError{Index: i, ID: r.ID, Reason: fieldText + " must be a string"}
		}
	}
	return r, nil
}

func jsonError(err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &domain.EncodingError{Offset: syn.Offset, Reason: syn.Error()}
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return &domain.EncodingError{Offset: typ.Offset, Reason: fmt.Sprintf("want a list of records, got %s", typ.Value)}
	}
	return &domain.EncodingError{Offset: -1, Reason: err.Error()}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// invalidUTF8 returns the offset of the first invalid byte, or -1.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}
