// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the target-screener pipeline.
package types

import (
	"errors"
	"fmt"
)

// Query holds the parameters of a single screening run. It is built once
// from user input, validated before the pipeline starts, and never mutated.
type Query struct {
	// Term is the disease search term (e.g. "obesity").
	Term string `json:"term" yaml:"term"`

	// FromYear and ToYear bound the publication year range, inclusive.
	FromYear int `json:"from_year" yaml:"from_year"`
	ToYear   int `json:"to_year" yaml:"to_year"`

	// MaxArticles bounds the number of distinct normalized articles the run
	// operates on. The bound applies after deduplication.
	MaxArticles int `json:"max_articles" yaml:"max_articles"`

	// MaxTargets bounds the length of the final ranking. The bound applies
	// after aggregation, to the post-filter ranked list.
	MaxTargets int `json:"max_targets" yaml:"max_targets"`
}

// Validate reports whether the query is usable. All violations are wrapped
// ErrInvalidQuery so callers can classify them with errors.Is.
func (q Query) Validate() error {
	if q.Term == "" {
		return fmt.Errorf("%w: disease term is empty", ErrInvalidQuery)
	}
	if q.FromYear > q.ToYear {
		return fmt.Errorf("%w: year range %d-%d is inverted", ErrInvalidQuery, q.FromYear, q.ToYear)
	}
	if q.MaxArticles <= 0 {
		return fmt.Errorf("%w: max articles must be positive, got %d", ErrInvalidQuery, q.MaxArticles)
	}
	if q.MaxTargets <= 0 {
		return fmt.Errorf("%w: max targets must be positive, got %d", ErrInvalidQuery, q.MaxTargets)
	}
	return nil
}

// Error kinds surfaced at the pipeline boundary. Stage-local recoverable
// failures are absorbed inside their component; only these escape.
var (
	// ErrInvalidQuery marks bad user input. The pipeline never starts.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSourceUnavailable marks an external service unreachable after the
	// retry budget. Fatal at the fetch stage; degrades to per-symbol
	// ErrNotFound at the accession-linking stage.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotFound marks a symbol the protein database could not resolve.
	// Never fatal: the target stays in the Result with an empty accession.
	ErrNotFound = errors.New("not found")

	// ErrLexicon marks a malformed or unloadable lexicon. Startup-time fatal.
	ErrLexicon = errors.New("lexicon load failed")
)
