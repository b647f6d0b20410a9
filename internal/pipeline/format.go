// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/target-screener/pkg/types"
)

// FormatTable writes the ranked targets as a human-readable table to w.
func FormatTable(res *types.Result, w io.Writer) {
	if len(res.Targets) == 0 {
		fmt.Fprintln(w, "No targets found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-10s  %-40s  %s\n",
		"Rank", "Symbol", "Accession", "Protein", "Articles")
	fmt.Fprintln(w, strings.Repeat("-", 78))

	for i, t := range res.Targets {
		name := t.AccessionName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		accession := t.Accession
		if accession == "" {
			accession = "-"
		}
		fmt.Fprintf(w, "%-4d  %-10s  %-10s  %-40s  %d\n",
			i+1, t.Symbol, accession, name, t.ArticleCount)
	}

	fmt.Fprintf(w, "\n%d targets from %d articles", len(res.Targets), res.ArticlesSearched)
	if res.Truncated {
		fmt.Fprintf(w, " (literature truncated)")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the full result, supporting articles included, as
// indented JSON to w.
func FormatJSON(res *types.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
