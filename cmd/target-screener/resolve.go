// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/target-screener/internal/lexicon"
	"github.com/pdiddy/target-screener/internal/linker"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [symbol...]",
	Short: "Resolve gene symbols to protein-database accessions",
	Long: `Resolve looks up one or more gene symbols in the protein database,
trying lexicon synonyms when the symbol itself has no reviewed entry.
Results are cached, so repeated lookups skip the network.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return err
	}

	cache, err := linker.OpenCache(cfg.Linker.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	resolver := linker.NewResolver(linker.NewProteinDB(cfg.Linker), cache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, symbol := range args {
		rec, err := resolver.Resolve(ctx, symbol, lex.SynonymsOf(symbol), os.Stderr)
		if err != nil {
			return err
		}
		if !rec.Found {
			fmt.Fprintf(os.Stdout, "%s: no reviewed entry\n", symbol)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: %s  %s\n  %s\n",
			symbol, rec.Accession, rec.Name, linker.EntryURL(rec.Accession))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
