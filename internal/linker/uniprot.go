// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/target-screener/internal/httputil"
	"github.com/pdiddy/target-screener/pkg/types"
)

// uniprotSearchBase is a package variable so tests can point the client at a
// local server.
var uniprotSearchBase = "https://rest.uniprot.org/uniprotkb/search"

const (
	defaultWorkers = 4
	defaultRate    = 5.0
)

// ProteinDB queries the UniProtKB search endpoint for reviewed human entries.
type ProteinDB struct {
	HTTP    *http.Client
	Config  types.LinkerConfig
	Limiter *rate.Limiter

	// BaseURL of the search endpoint. Defaults to the public service.
	BaseURL string
}

// NewProteinDB builds a client from config, applying defaults for zero values.
func NewProteinDB(cfg types.LinkerConfig) *ProteinDB {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRate
	}
	return &ProteinDB{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		Config:  cfg,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		BaseURL: uniprotSearchBase,
	}
}

// EntryURL returns the human-readable entry page for an accession.
func EntryURL(accession string) string {
	return fmt.Sprintf("https://www.uniprot.org/uniprotkb/%s/entry", accession)
}

// Lookup resolves a single gene symbol or synonym to its primary accession
// and recommended protein name. It returns types.ErrNotFound when no
// reviewed human entry matches, and types.ErrSourceUnavailable when the
// database cannot be reached.
func (p *ProteinDB) Lookup(ctx context.Context, term string) (accession, name string, err error) {
	if err := p.Limiter.Wait(ctx); err != nil {
		return "", "", err
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("gene_exact:%q AND reviewed:true AND organism_id:9606", term))
	params.Set("fields", "accession,protein_name")
	params.Set("size", "1")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("building lookup request: %w", err)
	}
	if p.Config.UserAgent != "" {
		req.Header.Set("User-Agent", p.Config.UserAgent)
	}
	if p.Config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.Config.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.HTTP, req, p.Config.MaxRetries)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: lookup for %s returned status %d",
			types.ErrSourceUnavailable, term, resp.StatusCode)
	}

	var parsed uniprotResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("decoding lookup response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", "", fmt.Errorf("%w: no reviewed entry for %s", types.ErrNotFound, term)
	}

	entry := parsed.Results[0]
	return entry.PrimaryAccession, entry.proteinName(), nil
}

// uniprotResponse mirrors the subset of the UniProtKB search payload we use.
type uniprotResponse struct {
	Results []uniprotEntry `json:"results"`
}

type uniprotEntry struct {
	PrimaryAccession   string             `json:"primaryAccession"`
	ProteinDescription proteinDescription `json:"proteinDescription"`
}

type proteinDescription struct {
	RecommendedName *proteinName  `json:"recommendedName"`
	SubmissionNames []proteinName `json:"submissionNames"`
}

type proteinName struct {
	FullName struct {
		Value string `json:"value"`
	} `json:"fullName"`
}

// proteinName prefers the recommended name; unreviewed-style submission
// names are a fallback for entries that lack one.
func (e uniprotEntry) proteinName() string {
	if e.ProteinDescription.RecommendedName != nil {
		return e.ProteinDescription.RecommendedName.FullName.Value
	}
	if len(e.ProteinDescription.SubmissionNames) > 0 {
		return e.ProteinDescription.SubmissionNames[0].FullName.Value
	}
	return ""
}
