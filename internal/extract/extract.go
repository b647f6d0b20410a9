// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans article text for gene/protein mentions against the
// reference lexicon. Pure in-memory computation: no I/O, no suspension.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/pkg/types"
)

// Extract returns the canonical symbols mentioned in the article, in lexicon
// order. A symbol is mentioned when any of its terms occurs in the
// title+abstract text as a whole token, under the entry's case sensitivity.
// Each symbol appears at most once regardless of occurrence count. A term
// registered under several symbols yields all of them: recall over precision,
// by explicit policy (see Lexicon.AmbiguousTerms).
func Extract(article types.Article, lex *lexicon.Lexicon) []string {
	text := article.Text()
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var symbols []string
	for _, e := range lex.Entries {
		for _, term := range e.Terms() {
			if containsToken(text, lower, term, e.CaseSensitive) {
				symbols = append(symbols, e.Symbol)
				break
			}
		}
	}
	return symbols
}

// containsToken reports whether term occurs in the text as a whole token:
// the runes adjacent to the match are neither letters nor digits. Multi-word
// terms match as phrases under the same boundary rule.
func containsToken(text, lowerText, term string, caseSensitive bool) bool {
	if term == "" {
		return false
	}
	haystack := text
	needle := term
	if !caseSensitive {
		haystack = lowerText
		needle = strings.ToLower(term)
	}

	for start := 0; start <= len(haystack)-len(needle); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		if tokenBoundary(haystack, i, i+len(needle)) {
			return true
		}
		start = i + 1
	}
	return false
}

// tokenBoundary reports whether [lo, hi) sits on token boundaries in s.
func tokenBoundary(s string, lo, hi int) bool {
	if lo > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:lo])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if hi < len(s) {
		r, _ := utf8.DecodeRuneInString(s[hi:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
