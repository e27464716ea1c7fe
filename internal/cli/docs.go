package cli

import (
	"errors"
	"fmt"

	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/fhevm-examples/exgen/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	docsAll       bool
	docsOutput    string
	docsNoSummary bool
	docsAPI       bool
	docsGuide     bool
	docsParallel  int
)

var generateDocsCmd = &cobra.Command{
	Use:   "generate-docs [example-id]",
	Short: "Write documentation pages for one example or all of them",
	Long: `Write <id>.md (and optionally <id>-api.md and <id>-guide.md) into the
output directory and add each example to <output>/SUMMARY.md. Existing pages
are overwritten.

With --all every example is processed. A failing example does not stop the
batch; the command prints a tally and exits non-zero if any example failed.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if docsAll {
			if len(args) > 0 {
				return errors.New("an example id cannot be combined with --all")
			}
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runGenerateDocs,
}

func init() {
	generateDocsCmd.Flags().BoolVar(&docsAll, "all", false, "Generate docs for every example")
	generateDocsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output directory (default from docs.output, \"docs\")")
	generateDocsCmd.Flags().BoolVar(&docsNoSummary, "no-summary", false, "Do not update SUMMARY.md")
	generateDocsCmd.Flags().BoolVar(&docsAPI, "api", false, "Also write the API reference page")
	generateDocsCmd.Flags().BoolVar(&docsGuide, "guide", false, "Also write the learning guide page")
	generateDocsCmd.Flags().IntVarP(&docsParallel, "parallel", "p", 0, "Examples processed concurrently with --all (default from batch.parallel)")
	rootCmd.AddCommand(generateDocsCmd)
}

func runGenerateDocs(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	output := docsOutput
	if output == "" {
		output = a.settings.Docs.Output
	}
	opts := scaffold.Options{
		API:         docsAPI || a.settings.Docs.API,
		Guide:       docsGuide || a.settings.Docs.Guide,
		NoSummary:   docsNoSummary,
		Parallelism: a.settings.Batch.Parallel,
	}
	if docsParallel > 0 {
		opts.Parallelism = docsParallel
	}

	g := scaffold.NewDocGenerator(a.scaffoldConfig())
	out := cmd.OutOrStdout()

	if !docsAll {
		files, err := g.Generate(cmd.Context(), args[0], output, opts)
		if err != nil {
			return err
		}
		ui.Success(out, "Generated docs for %s in %s", args[0], output)
		for _, f := range files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		return nil
	}

	logger.Debug("generating all docs", zap.String("output", output), zap.Int("parallel", opts.Parallelism))
	report := g.GenerateAll(cmd.Context(), output, opts)
	for _, o := range report.Failures() {
		if o.Skipped {
			ui.Warn(cmd.ErrOrStderr(), "%s: skipped (%v)", o.ID, o.Err)
			continue
		}
		ui.Failure(cmd.ErrOrStderr(), "%s: %v", o.ID, o.Err)
	}
	if report.SummaryErr != nil {
		ui.Warn(cmd.ErrOrStderr(), "SUMMARY.md was not updated: %v", report.SummaryErr)
	}

	fmt.Fprintf(out, "%d succeeded, %d failed\n", report.Succeeded(), report.Failed())
	return report.Err()
}
