// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/internal/linker"
	"github.com/pdiddy/target-screener/internal/literature"
	"github.com/pdiddy/target-screener/internal/pipeline"
	"github.com/pdiddy/target-screener/pkg/types"
)

var screenCmd = &cobra.Command{
	Use:   "screen [disease term]",
	Short: "Run the full screening pipeline for a disease term",
	Long: `Screen fetches literature for the disease term, extracts gene and protein
mentions against the lexicon, ranks targets by distinct supporting articles,
and links each target to its protein-database accession.

The ranked list prints as a table by default; --json emits the full result
including supporting articles, and --out saves it to a YAML file.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func runScreen(cmd *cobra.Command, args []string) error {
	fromYear, _ := cmd.Flags().GetInt("from")
	toYear, _ := cmd.Flags().GetInt("to")
	maxArticles, _ := cmd.Flags().GetInt("max-articles")
	maxTargets, _ := cmd.Flags().GetInt("max-targets")

	query := types.Query{
		Term:        args[0],
		FromYear:    fromYear,
		ToYear:      toYear,
		MaxArticles: maxArticles,
		MaxTargets:  maxTargets,
	}
	if err := query.Validate(); err != nil {
		return err
	}

	p, cache, err := buildPipeline()
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := p.Run(ctx, query, os.Stderr)
	if err != nil {
		return err
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := pipeline.WriteResultFile(outPath, result); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return pipeline.FormatJSON(result, os.Stdout)
	}
	pipeline.FormatTable(result, os.Stdout)
	return nil
}

// buildPipeline constructs the pipeline stages from configuration. The
// returned cache must be closed by the caller.
func buildPipeline() (*pipeline.Pipeline, *linker.Cache, error) {
	cfg := pipelineConfig()

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return nil, nil, err
	}

	cache, err := linker.OpenCache(cfg.Linker.CachePath)
	if err != nil {
		return nil, nil, err
	}

	resolver := linker.NewResolver(linker.NewProteinDB(cfg.Linker), cache)
	return pipeline.New(literature.NewClient(cfg.Literature), lex, resolver), cache, nil
}

func init() {
	screenCmd.Flags().Int("from", 2000, "publication year range start")
	screenCmd.Flags().Int("to", 2026, "publication year range end")
	screenCmd.Flags().Int("max-articles", 500, "maximum number of articles to mine")
	screenCmd.Flags().Int("max-targets", 25, "maximum number of ranked targets")
	screenCmd.Flags().Bool("json", false, "output the full result as JSON")
	screenCmd.Flags().String("out", "", "save the result to a YAML file")

	rootCmd.AddCommand(screenCmd)
}
