package cli

import (
	"fmt"
	"strings"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/spf13/cobra"
)

var (
	searchTagFilter string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search examples by title, description, concept, or tag",
	Long: `Search the catalog for examples whose title, description, concepts, or
tags contain the query (case-insensitive substring). Use --tag to keep only
examples carrying at least one of the given tags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	results := searchExamples(a.registry, query, parseTags(searchTagFilter))
	if len(results) == 0 && !searchJSON {
		msg := "No examples found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
	return printExamples(cmd, results, searchJSON)
}

// searchExamples runs the registry search and keeps results that carry any
// of tags. No tags means no tag filtering.
func searchExamples(reg *registry.Registry, query string, tags []string) []*registry.Example {
	results := reg.Search(query)
	if len(tags) == 0 {
		return results
	}
	return filterExamples(results, func(e *registry.Example) bool {
		return registry.MatchesAnyTag(e, tags)
	})
}

// parseTags splits a comma-separated tag list, dropping blanks.
func parseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
