package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("review not found")
	ErrValidation = errors.New("invalid review record")
	ErrEncoding   = errors.New("undecodable review source")
)

// ValidationError describes the first offending record of a rejected load.
// Index is the 0-based position of the record in the source list.
type ValidationError struct {
	Index  int
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%q): %s", e.Index, e.ID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// EncodingError reports source bytes that are not UTF-8 text or not a
// decodable record list. Offset is a byte offset, -1 when unknown.
type EncodingError struct {
	Offset int64
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("encoding: %s (byte %d)", e.Reason, e.Offset)
	}
	return "encoding: " + e.Reason
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }
