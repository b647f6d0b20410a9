// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/pkg/types"
)

// Resolver maps canonical symbols to accession records, consulting the
// cache before the external database.
type Resolver struct {
	DB    *ProteinDB
	Cache *Cache
}

// NewResolver builds a resolver around a protein database client and cache.
func NewResolver(db *ProteinDB, cache *Cache) *Resolver {
	return &Resolver{DB: db, Cache: cache}
}

// Resolve looks up one symbol, trying the symbol itself first and then each
// synonym in lexicon order. Definitive outcomes, found or not found, are
// cached; a lookup that failed because the database was unreachable degrades
// to a not-found record for this run but is not cached, so a later run can
// retry. Progress warnings go to w.
func (r *Resolver) Resolve(ctx context.Context, symbol string, synonyms []string, w io.Writer) (types.AccessionRecord, error) {
	if rec, ok := r.Cache.Get(symbol); ok {
		return rec, nil
	}

	terms := append([]string{symbol}, synonyms...)
	var unavailable bool
	for _, term := range terms {
		accession, name, err := r.DB.Lookup(ctx, term)
		if err == nil {
			rec := types.AccessionRecord{
				Symbol:    symbol,
				Accession: accession,
				Name:      name,
				Found:     true,
			}
			if err := r.Cache.Put(ctx, rec); err != nil {
				return rec, err
			}
			return rec, nil
		}
		if errors.Is(err, types.ErrNotFound) {
			continue
		}
		if ctx.Err() != nil {
			return types.AccessionRecord{}, ctx.Err()
		}
		fmt.Fprintf(w, "warning: accession lookup for %s (%s) failed: %v\n", symbol, term, err)
		unavailable = true
		break
	}

	rec := types.AccessionRecord{Symbol: symbol}
	if unavailable {
		// Not a definitive miss, so skip the cache.
		return rec, nil
	}
	if err := r.Cache.Put(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// ResolveAll resolves every ranked target with bounded concurrency,
// returning records keyed by symbol. Synonyms come from the lexicon entry
// for each symbol. Workers buffer their warnings; only the collection loop
// writes to w. The first context cancellation aborts the batch.
func (r *Resolver) ResolveAll(ctx context.Context, ranking []types.RankedTarget, lex *lexicon.Lexicon, w io.Writer) (map[string]types.AccessionRecord, error) {
	workers := r.DB.Config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	type outcome struct {
		rec      types.AccessionRecord
		warnings string
		err      error
	}

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, workers)
		results = make(chan outcome, len(ranking))
	)
	for _, target := range ranking {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var buf bytes.Buffer
			rec, err := r.Resolve(ctx, symbol, lex.SynonymsOf(symbol), &buf)
			results <- outcome{rec: rec, warnings: buf.String(), err: err}
		}(target.Symbol)
	}
	wg.Wait()
	close(results)

	records := make(map[string]types.AccessionRecord, len(ranking))
	for out := range results {
		if out.warnings != "" {
			io.WriteString(w, out.warnings)
		}
		if out.err != nil {
			return nil, out.err
		}
		records[out.rec.Symbol] = out.rec
	}
	return records, nil
}
