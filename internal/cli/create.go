package cli

import (
	"fmt"
	"io"

	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/fhevm-examples/exgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	createNoSummary bool
	createAPI       bool
	createGuide     bool

	categoryNoSummary bool
	categoryAPI       bool
	categoryGuide     bool
)

var createExampleCmd = &cobra.Command{
	Use:   "create-example <example-id> <target-dir>",
	Short: "Generate a standalone project for one example",
	Long: `Generate a runnable Hardhat project for one example: the base template,
the example's contract and test, and a README. The target directory must be
missing or empty; existing projects are never overwritten.

The project is added to SUMMARY.md next to the target directory unless
--no-summary is given or --summary points elsewhere.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreateExample,
}

var createCategoryCmd = &cobra.Command{
	Use:   "create-category <category-id> <target-dir>",
	Short: "Generate one project holding every example of a category",
	Long: `Generate a runnable Hardhat project with every example of a category. The
project README lists the examples and each one gets a page under docs/.
Contract files with the same name move into per-example subdirectories.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreateCategory,
}

func init() {
	createExampleCmd.Flags().BoolVar(&createNoSummary, "no-summary", false, "Do not update SUMMARY.md")
	createExampleCmd.Flags().BoolVar(&createAPI, "api", false, "Also write docs/API.md")
	createExampleCmd.Flags().BoolVar(&createGuide, "guide", false, "Also write docs/GUIDE.md")
	rootCmd.AddCommand(createExampleCmd)

	createCategoryCmd.Flags().BoolVar(&categoryNoSummary, "no-summary", false, "Do not update SUMMARY.md")
	createCategoryCmd.Flags().BoolVar(&categoryAPI, "api", false, "Also write an API page per example")
	createCategoryCmd.Flags().BoolVar(&categoryGuide, "guide", false, "Also write a learning guide per example")
	rootCmd.AddCommand(createCategoryCmd)
}

func runCreateExample(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	opts := scaffold.Options{
		API:         createAPI || a.settings.Docs.API,
		Guide:       createGuide || a.settings.Docs.Guide,
		NoSummary:   createNoSummary,
		SummaryPath: a.settings.Summary.Path,
	}
	project, err := scaffold.NewMaterializer(a.scaffoldConfig()).MaterializeExample(cmd.Context(), args[0], args[1], opts)
	if err != nil {
		if project != nil {
			ui.Warn(cmd.ErrOrStderr(), "Project written to %s, but the summary index was not updated", project.Root)
		}
		return err
	}

	printProject(cmd.OutOrStdout(), fmt.Sprintf("example %s", project.Example), project)
	return nil
}

func runCreateCategory(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	opts := scaffold.Options{
		API:         categoryAPI || a.settings.Docs.API,
		Guide:       categoryGuide || a.settings.Docs.Guide,
		NoSummary:   categoryNoSummary,
		SummaryPath: a.settings.Summary.Path,
	}
	project, err := scaffold.NewMaterializer(a.scaffoldConfig()).MaterializeCategory(cmd.Context(), args[0], args[1], opts)
	if err != nil {
		if project != nil {
			ui.Warn(cmd.ErrOrStderr(), "Project written to %s, but the summary index was not updated", project.Root)
		}
		return err
	}

	printProject(cmd.OutOrStdout(), fmt.Sprintf("category %s", project.Category), project)
	return nil
}

func printProject(w io.Writer, what string, project *scaffold.GeneratedProject) {
	ui.Success(w, "Created %s in %s (%d files)", what, project.Root, len(project.Files))
	if project.SummaryPath != "" {
		fmt.Fprintf(w, "  Summary: %s\n", project.SummaryPath)
	}
	for _, warning := range project.Warnings {
		ui.Warn(w, "%s", warning)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintf(w, "  cd %s\n", project.Root)
	fmt.Fprintln(w, "  npm install")
	fmt.Fprintln(w, "  npx hardhat test")
}
