// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank aggregates per-article mentions into a ranked target list.
package rank

import (
	"sort"

	"github.com/pdiddy/target-screener/pkg/types"
)

// Mentions maps an article id to the canonical symbols mentioned in it.
// Symbol sets are deduplicated upstream: one mention per (article, symbol).
type Mentions map[string][]string

// Aggregate counts distinct articles per canonical symbol and returns the
// top maxTargets as a ranking. Ordering is deterministic: descending article
// count, then ascending symbol. Symbols with zero matches never appear;
// finding fewer symbols than requested is not an error.
func Aggregate(mentions Mentions, maxTargets int) []types.RankedTarget {
	counts := make(map[string]int)
	for _, symbols := range mentions {
		seen := make(map[string]bool, len(symbols))
		for _, sym := range symbols {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			counts[sym]++
		}
	}

	ranking := make([]types.RankedTarget, 0, len(counts))
	for sym, n := range counts {
		ranking = append(ranking, types.RankedTarget{Symbol: sym, ArticleCount: n})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].ArticleCount != ranking[j].ArticleCount {
			return ranking[i].ArticleCount > ranking[j].ArticleCount
		}
		return ranking[i].Symbol < ranking[j].Symbol
	})

	if maxTargets > 0 && len(ranking) > maxTargets {
		ranking = ranking[:maxTargets]
	}
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

// Supporters inverts the mention map: canonical symbol → ids of the articles
// that mention it. Used to attach supporting-article lists at assembly.
func Supporters(mentions Mentions) map[string][]string {
	supporters := make(map[string][]string)
	for articleID, symbols := range mentions {
		seen := make(map[string]bool, len(symbols))
		for _, sym := range symbols {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			supporters[sym] = append(supporters[sym], articleID)
		}
	}
	return supporters
}
