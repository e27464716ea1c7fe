package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/fhevm-examples/exgen/internal/render"
	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	showRaw  bool
	showKind string
)

var showCmd = &cobra.Command{
	Use:   "show <example-id>",
	Short: "Preview an example's generated document in the terminal",
	Long: `Render the README (or, with --doc, the API reference or learning guide)
of an example and print it formatted for the terminal. Nothing is written
to disk. Use --raw to print the Markdown source.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print Markdown without terminal formatting")
	showCmd.Flags().StringVar(&showKind, "doc", string(render.KindReadme), "Document to show (readme, api, guide)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(showKind)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	doc, err := scaffold.NewDocGenerator(a.scaffoldConfig()).Preview(args[0], kind)
	if err != nil {
		return err
	}

	if showRaw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), doc.Content)
		return err
	}

	style := glamour.WithAutoStyle()
	if flagNoColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(doc.Content)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func parseKind(s string) (render.Kind, error) {
	for _, k := range render.Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document %q (want readme, api, or guide)", s)
}
