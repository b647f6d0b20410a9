// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full screening flow: fetch literature, extract
// target mentions, rank by evidence, and attach protein accessions.
package pipeline

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/target-screener/internal/extract"
	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/internal/linker"
	"github.com/pdiddy/target-screener/internal/literature"
	"github.com/pdiddy/target-screener/internal/rank"
	"github.com/pdiddy/target-screener/pkg/types"
)

// Pipeline wires the stages together. Each field is independently
// constructable so commands and tests can swap pieces out.
type Pipeline struct {
	Literature *literature.Client
	Lexicon    *lexicon.Lexicon
	Resolver   *linker.Resolver
}

// New builds a pipeline from already-constructed stages.
func New(lit *literature.Client, lex *lexicon.Lexicon, resolver *linker.Resolver) *Pipeline {
	return &Pipeline{Literature: lit, Lexicon: lex, Resolver: resolver}
}

// Run executes one screening query end to end. Progress and degradation
// warnings go to w. An empty target list is a valid outcome. Cancellation
// aborts the run with ctx.Err() and no partial result.
func (p *Pipeline) Run(ctx context.Context, query types.Query, w io.Writer) (*types.Result, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	out, err := p.Literature.Search(ctx, query, w)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	articles := literature.NormalizeAll(out.Records, query.FromYear)

	mentions := make(rank.Mentions)
	byID := make(map[string]types.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
		if symbols := extract.Extract(a, p.Lexicon); len(symbols) > 0 {
			mentions[a.ID] = symbols
		}
	}

	ranking := rank.Aggregate(mentions, query.MaxTargets)

	records, err := p.Resolver.ResolveAll(ctx, ranking, p.Lexicon, w)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &types.Result{
		Query:            query,
		Targets:          assemble(ranking, rank.Supporters(mentions), records, byID),
		ArticlesSearched: len(articles),
		Truncated:        out.Truncated,
		Timestamp:        time.Now().UTC(),
	}, nil
}

// assemble joins the ranking, resolved accessions, and supporting articles
// into the final target entries. Supporting articles sort newest first, then
// by title for a stable order within a year.
func assemble(ranking []types.RankedTarget, supporters map[string][]string, records map[string]types.AccessionRecord, byID map[string]types.Article) []types.TargetEntry {
	targets := make([]types.TargetEntry, 0, len(ranking))
	for _, rt := range ranking {
		entry := types.TargetEntry{
			Symbol:       rt.Symbol,
			ArticleCount: rt.ArticleCount,
		}
		if rec, ok := records[rt.Symbol]; ok && rec.Found {
			entry.Accession = rec.Accession
			entry.AccessionName = rec.Name
			entry.AccessionURL = linker.EntryURL(rec.Accession)
		}

		for _, id := range supporters[rt.Symbol] {
			a, ok := byID[id]
			if !ok {
				continue
			}
			entry.Articles = append(entry.Articles, types.ArticleRef{
				ID:    a.ID,
				Title: a.Title,
				URL:   a.SourceURL,
				Year:  a.Year,
			})
		}
		sort.Slice(entry.Articles, func(i, j int) bool {
			if entry.Articles[i].Year != entry.Articles[j].Year {
				return entry.Articles[i].Year > entry.Articles[j].Year
			}
			return entry.Articles[i].Title < entry.Articles[j].Title
		})

		targets = append(targets, entry)
	}
	return targets
}
