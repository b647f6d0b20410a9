// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/target-screener/internal/httputil"
	"github.com/pdiddy/target-screener/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testQuery() types.Query {
	return types.Query{
		Term:        "obesity",
		FromYear:    2023,
		ToYear:      2025,
		MaxArticles: 10,
		MaxTargets:  5,
	}
}

func testClient(cfg types.LiteratureConfig) *Client {
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 1000
	}
	return NewClient(cfg)
}

// pageBody builds a canned Europe PMC response with sequential PMIDs.
func pageBody(hitCount, firstPMID, n int) string {
	var records []RawRecord
	for i := 0; i < n; i++ {
		pmid := strconv.Itoa(firstPMID + i)
		records = append(records, RawRecord{
			ID:      pmid,
			Source:  "MED",
			PMID:    pmid,
			Title:   "Article " + pmid,
			PubYear: "2024",
		})
	}
	resp := epmcResponse{HitCount: hitCount}
	resp.ResultList.Result = records
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestSearchEmptyTerm(t *testing.T) {
	c := testClient(types.LiteratureConfig{})
	var buf bytes.Buffer
	q := testQuery()
	q.Term = ""
	_, err := c.Search(context.Background(), q, &buf)
	if !errors.Is(err, types.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestSearchSinglePage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !strings.Contains(q.Get("query"), "PUB_YEAR:[2023 TO 2025]") {
			t.Errorf("query expression = %q, missing year range", q.Get("query"))
		}
		fmt.Fprint(w, pageBody(3, 100, 3))
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{})
	var buf bytes.Buffer
	out, err := c.Search(context.Background(), testQuery(), &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Records) != 3 {
		t.Errorf("len(Records) = %d, want 3", len(out.Records))
	}
	if out.HitCount != 3 {
		t.Errorf("HitCount = %d, want 3", out.HitCount)
	}
	// Source exhausted before MaxArticles: flagged as truncated.
	if !out.Truncated {
		t.Error("Truncated should be set when fewer hits than requested")
	}
}

func TestSearchPaginationOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprint(w, pageBody(6, page*10, 2))
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{PageSize: 2, Workers: 3})
	q := testQuery()
	q.MaxArticles = 6
	var buf bytes.Buffer
	out, err := c.Search(context.Background(), q, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Records) != 6 {
		t.Fatalf("len(Records) = %d, want 6", len(out.Records))
	}
	// Records must land in page order regardless of fetch-completion order.
	want := []string{"10", "11", "20", "21", "30", "31"}
	for i, pmid := range want {
		if out.Records[i].PMID != pmid {
			t.Errorf("Records[%d].PMID = %q, want %q", i, out.Records[i].PMID, pmid)
		}
	}
	if out.Truncated {
		t.Error("Truncated should not be set on a complete fetch")
	}
}

func TestSearchFirstPageFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{MaxRetries: 1})
	var buf bytes.Buffer
	_, err := c.Search(context.Background(), testQuery(), &buf)
	if !errors.Is(err, types.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestSearchLaterPageFailureTruncates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, pageBody(6, page*10, 2))
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{PageSize: 2, MaxRetries: 1})
	q := testQuery()
	q.MaxArticles = 6
	var buf bytes.Buffer
	out, err := c.Search(context.Background(), q, &buf)
	if err != nil {
		t.Fatalf("a late page failure must not fail the run: %v", err)
	}
	if !out.Truncated {
		t.Error("Truncated should be set after a permanent page failure")
	}
	if len(out.PageErrors) != 1 {
		t.Errorf("len(PageErrors) = %d, want 1", len(out.PageErrors))
	}
	// Pages 1 and 3 survive.
	if len(out.Records) != 4 {
		t.Errorf("len(Records) = %d, want 4", len(out.Records))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("output should warn about the failed page")
	}
}

func TestSearchZeroHits(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, pageBody(0, 0, 0))
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{})
	var buf bytes.Buffer
	out, err := c.Search(context.Background(), testQuery(), &buf)
	if err != nil {
		t.Fatalf("zero hits is not an error: %v", err)
	}
	if len(out.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(out.Records))
	}
}

func TestSearchRetriesRateLimit(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, pageBody(1, 100, 1))
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := testClient(types.LiteratureConfig{MaxRetries: 2})
	var buf bytes.Buffer
	out, err := c.Search(context.Background(), testQuery(), &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(out.Records))
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls)
	}
}
