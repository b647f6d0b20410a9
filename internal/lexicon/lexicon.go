// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon loads the curated gene/protein reference lexicon. The
// lexicon is process-wide immutable state: loaded once at startup, read-only
// during runs, refreshed only by restarting with a new dataset.
package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/target-screener/pkg/types"
)

// Entry maps a canonical symbol to the synonym strings that fold into it.
type Entry struct {
	// Symbol is the canonical gene/protein identifier (e.g. "GLP1R").
	Symbol string `yaml:"symbol"`

	// Synonyms are surface strings that resolve to Symbol. The symbol
	// itself always matches and need not be listed.
	Synonyms []string `yaml:"synonyms"`

	// CaseSensitive controls matching for this entry. Short symbols that
	// collide with common words (e.g. "LEP") should set it.
	CaseSensitive bool `yaml:"case_sensitive"`
}

// Terms returns the scannable strings of the entry: the canonical symbol
// followed by its synonyms in lexicon order.
func (e Entry) Terms() []string {
	terms := make([]string, 0, len(e.Synonyms)+1)
	terms = append(terms, e.Symbol)
	terms = append(terms, e.Synonyms...)
	return terms
}

// Lexicon is the loaded reference dataset.
type Lexicon struct {
	Entries []Entry

	bySymbol map[string]int
}

type lexiconFile struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads and validates a lexicon YAML file. Any failure is wrapped
// ErrLexicon: a process that cannot load its lexicon cannot serve runs.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrLexicon, path, err)
	}

	var lf lexiconFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", types.ErrLexicon, path, err)
	}
	if len(lf.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s contains no entries", types.ErrLexicon, path)
	}

	lex := &Lexicon{
		Entries:  lf.Entries,
		bySymbol: make(map[string]int, len(lf.Entries)),
	}
	for i, e := range lf.Entries {
		if strings.TrimSpace(e.Symbol) == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty symbol", types.ErrLexicon, i)
		}
		if _, dup := lex.bySymbol[e.Symbol]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", types.ErrLexicon, e.Symbol)
		}
		lex.bySymbol[e.Symbol] = i
	}
	return lex, nil
}

// SynonymsOf returns the synonyms registered for a canonical symbol, in
// lexicon order. Nil for unknown symbols.
func (l *Lexicon) SynonymsOf(symbol string) []string {
	idx, ok := l.bySymbol[symbol]
	if !ok {
		return nil
	}
	return l.Entries[idx].Synonyms
}

// Len returns the number of canonical symbols.
func (l *Lexicon) Len() int {
	return len(l.Entries)
}

// AmbiguousTerms returns the surface strings registered under more than one
// canonical symbol, mapped to the symbols they resolve to (sorted). The
// comparison is case-insensitive, the broadest notion of collision. The
// extractor emits matches for every owner; this report makes the documented
// precision trade-off inspectable.
func (l *Lexicon) AmbiguousTerms() map[string][]string {
	owners := make(map[string][]string)
	for _, e := range l.Entries {
		seen := make(map[string]bool)
		for _, term := range e.Terms() {
			key := strings.ToLower(term)
			if seen[key] {
				continue
			}
			seen[key] = true
			owners[key] = append(owners[key], e.Symbol)
		}
	}

	ambiguous := make(map[string][]string)
	for term, symbols := range owners {
		if len(symbols) > 1 {
			sort.Strings(symbols)
			ambiguous[term] = symbols
		}
	}
	return ambiguous
}
