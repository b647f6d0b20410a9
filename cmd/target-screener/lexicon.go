// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/target-screener/internal/lexicon"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect the reference lexicon (check, ambiguous)",
	Long: `Lexicon validates and inspects the curated symbol lexicon used for
mention extraction. Use subcommands to check it loads cleanly or to list
synonyms shared by more than one symbol.`,
}

var lexiconCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the lexicon and print summary statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := lexicon.Load(pipelineConfig().Lexicon.Path)
		if err != nil {
			return err
		}

		synonyms := 0
		for _, e := range lex.Entries {
			synonyms += len(e.Synonyms)
		}
		fmt.Fprintf(os.Stdout, "%d symbols, %d synonyms, %d ambiguous terms\n",
			lex.Len(), synonyms, len(lex.AmbiguousTerms()))
		return nil
	},
}

var lexiconAmbiguousCmd = &cobra.Command{
	Use:   "ambiguous",
	Short: "List terms claimed by more than one symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := lexicon.Load(pipelineConfig().Lexicon.Path)
		if err != nil {
			return err
		}

		ambiguous := lex.AmbiguousTerms()
		if len(ambiguous) == 0 {
			fmt.Fprintln(os.Stdout, "No ambiguous terms.")
			return nil
		}

		terms := make([]string, 0, len(ambiguous))
		for term := range ambiguous {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			fmt.Fprintf(os.Stdout, "%-30s  %s\n", term, strings.Join(ambiguous[term], ", "))
		}
		return nil
	},
}

func init() {
	lexiconCmd.AddCommand(lexiconCheckCmd)
	lexiconCmd.AddCommand(lexiconAmbiguousCmd)
	rootCmd.AddCommand(lexiconCmd)
}
