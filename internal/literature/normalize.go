// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"strconv"
	"strings"

	"github.com/pdiddy/target-screener/pkg/types"
)

// ArticleID builds a source-stable token of the form "SOURCE:ext_id".
//
// Priority:
//  1. MED:PMID  for PubMed records
//  2. PMC:ID    for PubMed Central (leading "PMC" stripped)
//  3. SRC:ID    generic fallback (preprints, Agricola, ...)
//
// Returns "" when the record carries no usable identifier.
func ArticleID(r RawRecord) string {
	if pmid := strings.TrimSpace(r.PMID); pmid != "" {
		return "MED:" + pmid
	}
	if pmcid := strings.TrimSpace(r.PMCID); pmcid != "" {
		core := pmcid
		if strings.HasPrefix(strings.ToUpper(pmcid), "PMC") {
			core = pmcid[3:]
		}
		return "PMC:" + core
	}
	source := strings.TrimSpace(r.Source)
	id := strings.TrimSpace(r.ID)
	if source != "" && id != "" {
		return source + ":" + id
	}
	return ""
}

// SourceLink builds the deep link back to the article: the Europe PMC page
// when an identifier exists, the DOI resolver otherwise.
func SourceLink(r RawRecord) string {
	if pmcid := strings.TrimSpace(r.PMCID); pmcid != "" {
		core := pmcid
		if strings.HasPrefix(strings.ToUpper(pmcid), "PMC") {
			core = pmcid[3:]
		}
		return "https://europepmc.org/article/PMC/" + core
	}
	if pmid := strings.TrimSpace(r.PMID); pmid != "" {
		return "https://europepmc.org/abstract/MED/" + pmid
	}
	if doi := strings.TrimSpace(r.DOI); doi != "" {
		return "https://doi.org/" + doi
	}
	return ""
}

// Normalize converts a raw record into an Article. Records with no title and
// no abstract carry nothing to extract from and are silently skipped (ok
// false), as are records with no usable identifier. An unparsable pubYear
// falls back to fallbackYear, the earliest year of the requested range.
func Normalize(r RawRecord, fallbackYear int) (types.Article, bool) {
	title := strings.TrimSpace(r.Title)
	abstract := strings.TrimSpace(r.Abstract)
	if title == "" && abstract == "" {
		return types.Article{}, false
	}

	id := ArticleID(r)
	if id == "" {
		return types.Article{}, false
	}

	year := fallbackYear
	if y, err := strconv.Atoi(strings.TrimSpace(r.PubYear)); err == nil && y > 0 {
		year = y
	}

	return types.Article{
		ID:        id,
		Title:     title,
		Abstract:  abstract,
		Year:      year,
		SourceURL: SourceLink(r),
	}, true
}

// NormalizeAll normalizes a batch and collapses duplicate ids, keeping the
// record with the richer text payload. Output order follows first sighting
// of each id; final display ordering is re-established at assembly.
func NormalizeAll(records []RawRecord, fallbackYear int) []types.Article {
	seen := make(map[string]int) // id → index in articles
	var articles []types.Article

	for _, r := range records {
		a, ok := Normalize(r, fallbackYear)
		if !ok {
			continue
		}
		if idx, dup := seen[a.ID]; dup {
			if textLen(a) > textLen(articles[idx]) {
				articles[idx] = a
			}
			continue
		}
		seen[a.ID] = len(articles)
		articles = append(articles, a)
	}
	return articles
}

func textLen(a types.Article) int {
	return len(a.Title) + len(a.Abstract)
}
