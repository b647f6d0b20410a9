// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article is the uniform in-memory representation of a literature record
// after normalization. Immutable once created; lives for one pipeline run.
type Article struct {
	// ID is a source-stable token of the form "MED:123", "PMC:456", or
	// "SRC:id", unique within a run's result set.
	ID string `json:"id" yaml:"id"`

	// Title is the article title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract text. May be empty when only a title exists.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year. When the source date is unparsable it
	// defaults to the earliest year of the requested range.
	Year int `json:"year" yaml:"year"`

	// SourceURL links back to the article (Europe PMC page, DOI fallback).
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// Text returns the concatenated title and abstract scanned by the extractor.
func (a Article) Text() string {
	if a.Abstract == "" {
		return a.Title
	}
	return a.Title + " " + a.Abstract
}
