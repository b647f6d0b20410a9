// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/target-screener/internal/httputil"
	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// --- test helpers ---

func testCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func testResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	orig := uniprotSearchBase
	uniprotSearchBase = srv.URL
	t.Cleanup(func() { uniprotSearchBase = orig })

	db := NewProteinDB(types.LinkerConfig{
		HTTPConfig:        types.HTTPConfig{Timeout: 5 * time.Second},
		MaxRetries:        1,
		Workers:           2,
		RequestsPerSecond: 1000,
	})
	return NewResolver(db, testCache(t))
}

// entryBody builds a single-result search payload.
func entryBody(accession, name string) string {
	return fmt.Sprintf(`{"results":[{"primaryAccession":%q,
		"proteinDescription":{"recommendedName":{"fullName":{"value":%q}}}}]}`,
		accession, name)
}

func testLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `entries:
  - symbol: GLP1R
    synonyms: ["GLP-1R", "glucagon-like peptide 1 receptor"]
  - symbol: LEP
    synonyms: ["leptin"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	lex, err := lexicon.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return lex
}

// --- cache tests ---

func TestCachePutGet(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	rec := types.AccessionRecord{Symbol: "GLP1R", Accession: "P43220", Name: "Glucagon-like peptide 1 receptor", Found: true}
	if err := cache.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get("GLP1R")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != rec {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if _, ok := cache.Get("LEP"); ok {
		t.Error("unexpected hit for unresolved symbol")
	}
}

func TestCacheStoresNotFound(t *testing.T) {
	cache := testCache(t)
	if err := cache.Put(context.Background(), types.AccessionRecord{Symbol: "FAKE1"}); err != nil {
		t.Fatal(err)
	}
	got, ok := cache.Get("FAKE1")
	if !ok {
		t.Fatal("expected cached not-found record")
	}
	if got.Found {
		t.Error("record should not be marked found")
	}
}

func TestCachePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "accessions.db")
	ctx := context.Background()

	first, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	rec := types.AccessionRecord{Symbol: "LEP", Accession: "P41159", Name: "Leptin", Found: true}
	if err := first.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	got, ok := second.Get("LEP")
	if !ok {
		t.Fatal("expected record to survive reopen")
	}
	if got != rec {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if second.Len() != 1 {
		t.Errorf("got %d cached symbols, want 1", second.Len())
	}
}

func TestCacheLastWriterWins(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, types.AccessionRecord{Symbol: "GLP1R"}); err != nil {
		t.Fatal(err)
	}
	updated := types.AccessionRecord{Symbol: "GLP1R", Accession: "P43220", Found: true}
	if err := cache.Put(ctx, updated); err != nil {
		t.Fatal(err)
	}

	got, _ := cache.Get("GLP1R")
	if got != updated {
		t.Errorf("got %+v, want %+v", got, updated)
	}
	if cache.Len() != 1 {
		t.Errorf("got %d entries, want 1", cache.Len())
	}
}

// --- resolver tests ---

func TestResolveCachesLookup(t *testing.T) {
	var calls atomic.Int32
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, entryBody("P43220", "Glucagon-like peptide 1 receptor"))
	})

	ctx := context.Background()
	first, err := r.Resolve(ctx, "GLP1R", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Found || first.Accession != "P43220" {
		t.Fatalf("unexpected record: %+v", first)
	}

	second, err := r.Resolve(ctx, "GLP1R", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("cached record differs: %+v vs %+v", second, first)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("got %d lookups, want 1", got)
	}
}

func TestResolveSynonymFallback(t *testing.T) {
	var (
		mu    sync.Mutex
		terms []string
	)
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query().Get("query")
		mu.Lock()
		terms = append(terms, q)
		mu.Unlock()
		if strings.Contains(q, "leptin") {
			fmt.Fprint(w, entryBody("P41159", "Leptin"))
			return
		}
		fmt.Fprint(w, `{"results":[]}`)
	})

	rec, err := r.Resolve(context.Background(), "LEP", []string{"OB", "leptin"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Found || rec.Accession != "P41159" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(terms) != 3 {
		t.Errorf("got %d lookups, want 3 (symbol then synonyms in order)", len(terms))
	}
}

func TestResolveNotFoundCached(t *testing.T) {
	var calls atomic.Int32
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"results":[]}`)
	})

	ctx := context.Background()
	rec, err := r.Resolve(ctx, "FAKE1", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Found {
		t.Fatalf("expected not-found record, got %+v", rec)
	}

	if _, err := r.Resolve(ctx, "FAKE1", nil, io.Discard); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("got %d lookups, want 1 (miss should be cached)", got)
	}
}

func TestResolveOutageDegradesWithoutCaching(t *testing.T) {
	var calls atomic.Int32
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx := context.Background()
	var warnings strings.Builder
	rec, err := r.Resolve(ctx, "GLP1R", nil, &warnings)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Found {
		t.Fatalf("expected degraded not-found record, got %+v", rec)
	}
	if !strings.Contains(warnings.String(), "warning:") {
		t.Errorf("expected warning output, got %q", warnings.String())
	}
	if _, ok := r.Cache.Get("GLP1R"); ok {
		t.Error("outage outcome must not be cached")
	}

	before := calls.Load()
	if _, err := r.Resolve(ctx, "GLP1R", nil, io.Discard); err != nil {
		t.Fatal(err)
	}
	if calls.Load() == before {
		t.Error("expected a fresh lookup after an outage")
	}
}

func TestResolveAll(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query().Get("query")
		switch {
		case strings.Contains(q, "GLP1R"):
			fmt.Fprint(w, entryBody("P43220", "Glucagon-like peptide 1 receptor"))
		case strings.Contains(q, "LEP"):
			fmt.Fprint(w, entryBody("P41159", "Leptin"))
		default:
			fmt.Fprint(w, `{"results":[]}`)
		}
	})

	ranking := []types.RankedTarget{
		{Symbol: "GLP1R", ArticleCount: 9, Rank: 1},
		{Symbol: "LEP", ArticleCount: 4, Rank: 2},
	}
	records, err := r.ResolveAll(context.Background(), ranking, testLexicon(t), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records["GLP1R"].Accession != "P43220" || records["LEP"].Accession != "P41159" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestResolveAllManyDegradedLookups(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	var ranking []types.RankedTarget
	for i := 0; i < 16; i++ {
		ranking = append(ranking, types.RankedTarget{Symbol: fmt.Sprintf("SYM%02d", i)})
	}

	// A plain buffer is not goroutine-safe; warnings must reach it from the
	// collection loop only.
	var warnings bytes.Buffer
	records, err := r.ResolveAll(context.Background(), ranking, testLexicon(t), &warnings)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(ranking) {
		t.Fatalf("got %d records, want %d", len(records), len(ranking))
	}
	for _, rt := range ranking {
		rec, ok := records[rt.Symbol]
		if !ok || rec.Found {
			t.Errorf("expected degraded not-found record for %s, got %+v", rt.Symbol, rec)
		}
	}
	if got := strings.Count(warnings.String(), "warning:"); got != len(ranking) {
		t.Errorf("got %d warnings, want %d", got, len(ranking))
	}
}

func TestResolveAllCancelled(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, entryBody("P43220", "Glucagon-like peptide 1 receptor"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveAll(ctx, []types.RankedTarget{{Symbol: "GLP1R"}}, testLexicon(t), io.Discard)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
