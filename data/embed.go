// Package data bundles the curated review dataset (REV001–REV050).
package data

import _ "embed"

//go:embed reviews.js
var reviews string

// Reviews returns the raw bundled source. Each call returns a fresh copy.
func Reviews() []byte { return []byte(reviews) }
