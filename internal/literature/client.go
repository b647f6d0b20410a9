// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literature queries the Europe PMC REST API and normalizes the
// returned records into the pipeline's article representation.
package literature

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pdiddy/target-screener/internal/httputil"
	"github.com/pdiddy/target-screener/pkg/types"
)

// searchBase is the Europe PMC search endpoint. Declared as a var so tests
// can substitute an httptest server.
var searchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

const (
	// maxPageSize is the Europe PMC pageSize ceiling.
	maxPageSize     = 1000
	defaultPageSize = 100
	defaultWorkers  = 4
	defaultRate     = 5.0
)

// Client fetches literature records with pagination, retries, and a shared
// client-side rate limit across all page requests.
type Client struct {
	HTTP    *http.Client
	Config  types.LiteratureConfig
	Limiter *rate.Limiter

	// BaseURL of the search endpoint. Defaults to the public service.
	BaseURL string
}

// NewClient builds a Client from config, applying defaults for unset fields.
func NewClient(cfg types.LiteratureConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	return &Client{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		Config:  cfg,
		Limiter: rate.NewLimiter(rate.Limit(rps), 1),
		BaseURL: searchBase,
	}
}

// FetchOutput holds the raw records of a literature fetch and its
// completeness markers.
type FetchOutput struct {
	Records  []RawRecord
	HitCount int

	// Truncated is set when fewer records were collected than requested,
	// through source exhaustion or a permanently failed page.
	Truncated bool

	// PageErrors lists pages that failed after the retry budget.
	PageErrors []string
}

// Search fetches up to query.MaxArticles records matching the disease term
// within the year range. The first page is fetched synchronously to learn
// the hit count; remaining pages go through a bounded worker pool and may
// complete out of order, so records are reassembled in page order before
// returning. A first-page failure is fatal (ErrSourceUnavailable); a later
// page failing permanently truncates the output instead of discarding it.
func (c *Client) Search(ctx context.Context, query types.Query, w io.Writer) (FetchOutput, error) {
	if query.Term == "" {
		return FetchOutput{}, fmt.Errorf("%w: disease term is empty", types.ErrInvalidQuery)
	}

	pageSize := c.Config.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	if pageSize > query.MaxArticles {
		pageSize = query.MaxArticles
	}

	expr := fmt.Sprintf("%s AND PUB_YEAR:[%d TO %d]", query.Term, query.FromYear, query.ToYear)

	first, hitCount, err := c.fetchPage(ctx, expr, 1, pageSize)
	if err != nil {
		return FetchOutput{}, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	fmt.Fprintf(w, "fetched page 1 (%d records, %d total hits)\n", len(first), hitCount)

	needed := query.MaxArticles
	if hitCount < needed {
		needed = hitCount
	}
	totalPages := 1
	if pageSize > 0 {
		totalPages = (needed + pageSize - 1) / pageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}

	pages := map[int][]RawRecord{1: first}
	var pageErrors []string

	if totalPages > 1 {
		extra, errs := c.fetchConcurrent(ctx, expr, 2, totalPages, pageSize, w)
		if ctx.Err() != nil {
			return FetchOutput{}, ctx.Err()
		}
		for p, recs := range extra {
			pages[p] = recs
		}
		pageErrors = errs
	}

	// Reassemble in page order; fetch-completion order carries no meaning.
	var ordered []int
	for p := range pages {
		ordered = append(ordered, p)
	}
	sort.Ints(ordered)

	var records []RawRecord
	for _, p := range ordered {
		records = append(records, pages[p]...)
	}
	if len(records) > query.MaxArticles {
		records = records[:query.MaxArticles]
	}

	out := FetchOutput{
		Records:    records,
		HitCount:   hitCount,
		PageErrors: pageErrors,
		Truncated:  len(pageErrors) > 0 || len(records) < query.MaxArticles,
	}
	return out, nil
}

// fetchConcurrent fetches pages [from, to] through a worker pool bounded by
// Config.Workers. Failed pages are reported, not fatal.
func (c *Client) fetchConcurrent(ctx context.Context, expr string, from, to, pageSize int, w io.Writer) (map[int][]RawRecord, []string) {
	workers := c.Config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	type pageResult struct {
		page    int
		records []RawRecord
		err     error
	}

	sem := make(chan struct{}, workers)
	ch := make(chan pageResult, to-from+1)
	var wg sync.WaitGroup

	for page := from; page <= to; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				ch <- pageResult{page: page, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			records, _, err := c.fetchPage(ctx, expr, page, pageSize)
			ch <- pageResult{page: page, records: records, err: err}
		}(page)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	results := make(map[int][]RawRecord)
	var errs []string
	for pr := range ch {
		if pr.err != nil {
			msg := fmt.Sprintf("page %d: %v", pr.page, pr.err)
			errs = append(errs, msg)
			fmt.Fprintf(w, "warning: %s\n", msg)
			continue
		}
		fmt.Fprintf(w, "fetched page %d (%d records)\n", pr.page, len(pr.records))
		results[pr.page] = pr.records
	}
	sort.Strings(errs)
	return results, errs
}

// fetchPage requests one result page. Transient failures are retried inside
// httputil.DoWithRetry; the error returned here is final for this page.
func (c *Client) fetchPage(ctx context.Context, expr string, page, pageSize int) ([]RawRecord, int, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	params := url.Values{
		"query":      {expr},
		"format":     {"json"},
		"resultType": {"lite"},
		"page":       {strconv.Itoa(page)},
		"pageSize":   {strconv.Itoa(pageSize)},
	}
	if c.Config.Email != "" {
		params.Set("email", c.Config.Email)
	}

	reqURL := c.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries)
	if err != nil {
		return nil, 0, fmt.Errorf("Europe PMC request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("Europe PMC returned HTTP %d", resp.StatusCode)
	}

	var er epmcResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, 0, fmt.Errorf("parsing Europe PMC response: %w", err)
	}
	return er.ResultList.Result, er.HitCount, nil
}

// Europe PMC API JSON structures.
type epmcResponse struct {
	HitCount   int            `json:"hitCount"`
	ResultList epmcResultList `json:"resultList"`
}

type epmcResultList struct {
	Result []RawRecord `json:"result"`
}

// RawRecord is one literature record as returned by the source. Optional
// fields (abstract, ids, date) may be empty.
type RawRecord struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	PMID     string `json:"pmid"`
	PMCID    string `json:"pmcid"`
	DOI      string `json:"doi"`
	Title    string `json:"title"`
	Abstract string `json:"abstractText"`
	PubYear  string `json:"pubYear"`
}
