// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RankedTarget is one row of the aggregator's ranking: a canonical symbol,
// the number of distinct articles mentioning it, and its 1-based rank.
type RankedTarget struct {
	Symbol       string `json:"symbol" yaml:"symbol"`
	ArticleCount int    `json:"article_count" yaml:"article_count"`
	Rank         int    `json:"rank" yaml:"rank"`
}

// AccessionRecord links a canonical symbol to its protein-database entry.
// Cached per symbol for the process lifetime; Found false records a
// definitive miss so repeated runs do not re-query.
type AccessionRecord struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Accession string `json:"accession" yaml:"accession"`
	Name      string `json:"name" yaml:"name"`
	Found     bool   `json:"found" yaml:"found"`
}

// ArticleRef is a supporting-article reference carried on a target entry.
type ArticleRef struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Year  int    `json:"year" yaml:"year"`
}

// TargetEntry is one ranked target in the final Result. Accession fields are
// empty when the protein database had no match; the target is still listed.
type TargetEntry struct {
	Symbol        string       `json:"symbol" yaml:"symbol"`
	Accession     string       `json:"accession" yaml:"accession"`
	AccessionName string       `json:"accession_name" yaml:"accession_name"`
	AccessionURL  string       `json:"accession_url" yaml:"accession_url"`
	ArticleCount  int          `json:"article_count" yaml:"article_count"`
	Articles      []ArticleRef `json:"articles" yaml:"articles"`
}

// Result is the final artifact of a screening run, consumed by the UI.
type Result struct {
	Query Query `json:"query" yaml:"query"`

	// Targets is the ranked list. Counts are non-increasing; equal counts
	// are ordered by ascending symbol. May be empty on a run with no hits.
	Targets []TargetEntry `json:"targets" yaml:"targets"`

	// ArticlesSearched is the number of distinct articles after normalization.
	ArticlesSearched int `json:"articles_searched" yaml:"articles_searched"`

	// Truncated is set when fewer articles were retrieved than requested,
	// either because the source was exhausted or a later page failed. The UI
	// surfaces it as "results may be incomplete".
	Truncated bool `json:"truncated" yaml:"truncated"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
