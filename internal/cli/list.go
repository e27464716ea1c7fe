package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listCategory   string
	listDifficulty string
	listTag        string
	listCategories bool
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List examples in the catalog",
	Long: `List every example in the catalog, optionally filtered by category,
difficulty, or tag. Filters combine. --categories lists the categories
instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only examples of this category")
	listCmd.Flags().StringVar(&listDifficulty, "difficulty", "", "Only examples at this level (beginner, intermediate, advanced)")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only examples carrying this tag or concept")
	listCmd.Flags().BoolVar(&listCategories, "categories", false, "List categories instead of examples")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// exampleEntry is the display form of an example.
type exampleEntry struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Description string   `json:"description"`
	Contract    string   `json:"contract"`
	Test        string   `json:"test,omitempty"`
	Concepts    []string `json:"concepts,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// categoryEntry is the display form of a category.
type categoryEntry struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	reg := a.registry

	if listCategories {
		return printCategories(cmd, reg.Categories())
	}

	examples, err := selectExamples(reg, listCategory, listDifficulty, listTag)
	if err != nil {
		return err
	}

	if len(examples) == 0 && !listJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "No examples found.")
		return nil
	}
	return printExamples(cmd, examples, listJSON)
}

// selectExamples applies the list filters. Empty filters are ignored.
func selectExamples(reg *registry.Registry, category, difficulty, tag string) ([]*registry.Example, error) {
	var (
		examples []*registry.Example
		err      error
	)
	switch {
	case category != "":
		examples, err = reg.ExamplesInCategory(category)
	case tag != "":
		examples = reg.ExamplesByTag(tag)
	default:
		examples = reg.Examples()
	}
	if err != nil {
		return nil, err
	}

	if category != "" && tag != "" {
		examples = filterExamples(examples, func(e *registry.Example) bool {
			return registry.MatchesAnyTag(e, []string{tag})
		})
	}
	if difficulty != "" {
		d, err := registry.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		if category == "" && tag == "" {
			return reg.ExamplesByDifficulty(d), nil
		}
		examples = filterExamples(examples, func(e *registry.Example) bool { return e.Difficulty == d })
	}
	return examples, nil
}

func filterExamples(examples []*registry.Example, keep func(*registry.Example) bool) []*registry.Example {
	out := make([]*registry.Example, 0, len(examples))
	for _, e := range examples {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func toEntries(examples []*registry.Example) []exampleEntry {
	entries := make([]exampleEntry, 0, len(examples))
	for _, e := range examples {
		entries = append(entries, exampleEntry{
			Name:        e.Name,
			Title:       e.Title,
			Category:    e.Category,
			Difficulty:  string(e.Difficulty),
			Description: e.Description,
			Contract:    e.Contract,
			Test:        e.Test,
			Concepts:    e.Concepts,
			Tags:        e.Tags,
		})
	}
	return entries
}

func printExamples(cmd *cobra.Command, examples []*registry.Example, asJSON bool) error {
	entries := toEntries(examples)
	if asJSON {
		return printJSON(cmd, entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDIFFICULTY\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Category, e.Difficulty, truncate(e.Description, 60))
	}
	return w.Flush()
}

func printCategories(cmd *cobra.Command, categories []*registry.Category) error {
	entries := make([]categoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, categoryEntry{
			Name:        c.Name,
			Title:       c.Title,
			Difficulty:  string(c.Difficulty),
			Description: c.Description,
			Examples:    c.Examples,
		})
	}
	if listJSON {
		return printJSON(cmd, entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tEXAMPLES")
	for _, c := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.Name, c.Title, len(c.Examples))
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
