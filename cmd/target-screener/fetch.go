// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/target-screener/internal/literature"
	"github.com/pdiddy/target-screener/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [disease term]",
	Short: "Fetch and normalize literature for a disease term",
	Long: `Fetch retrieves article records for the disease term, deduplicates them,
and prints the normalized articles without running extraction or ranking.
Useful for checking coverage of a query before a full screen.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	fromYear, _ := cmd.Flags().GetInt("from")
	toYear, _ := cmd.Flags().GetInt("to")
	maxArticles, _ := cmd.Flags().GetInt("max-articles")

	query := types.Query{
		Term:        args[0],
		FromYear:    fromYear,
		ToYear:      toYear,
		MaxArticles: maxArticles,
		MaxTargets:  1, // unused by fetch but must pass validation
	}
	if err := query.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := literature.NewClient(pipelineConfig().Literature)
	out, err := client.Search(ctx, query, os.Stderr)
	if err != nil {
		return err
	}
	articles := literature.NormalizeAll(out.Records, query.FromYear)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-6s  %s\n", "ID", "Year", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, a := range articles {
		title := a.Title
		if len(title) > 56 {
			title = title[:53] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-6d  %s\n", a.ID, a.Year, title)
	}
	fmt.Fprintf(os.Stdout, "\n%d articles (%d total hits)", len(articles), out.HitCount)
	if out.Truncated {
		fmt.Fprint(os.Stdout, " (truncated)")
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

func init() {
	fetchCmd.Flags().Int("from", 2000, "publication year range start")
	fetchCmd.Flags().Int("to", 2026, "publication year range end")
	fetchCmd.Flags().Int("max-articles", 500, "maximum number of articles to fetch")
	fetchCmd.Flags().Bool("json", false, "output articles as JSON")

	rootCmd.AddCommand(fetchCmd)
}
