package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fhevm-examples/exgen/internal/branding"
	"github.com/fhevm-examples/exgen/internal/config"
	"github.com/fhevm-examples/exgen/internal/manifest"
	"github.com/fhevm-examples/exgen/internal/registry"
	"github.com/fhevm-examples/exgen/internal/scaffold"
	"github.com/fhevm-examples/exgen/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagCatalog     string
	flagSourceRoot  string
	flagTemplateDir string
	flagSummary     string
	flagVerbose     bool
	flagNoColor     bool
)

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns a catalog of FHEVM examples (Solidity contracts and their
Hardhat tests) into standalone example projects and documentation pages,
and keeps a shared SUMMARY.md index of everything it generated.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			ui.SetNoColor(true)
		}
		if err := initConfig(cmd.Root().PersistentFlags()); err != nil {
			return err
		}

		l, err := newLogger(flagVerbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("config", viper.ConfigFileUsed()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagCatalog, "catalog", "", "Catalog file (.yaml or .toml); defaults to the embedded catalog")
	flags.StringVar(&flagSourceRoot, "source-root", ".", "Directory that contract and test paths are relative to")
	flags.StringVar(&flagTemplateDir, "template-dir", "", "Base project template directory; defaults to the embedded Hardhat template")
	flags.StringVar(&flagSummary, "summary", "", "SUMMARY.md updated by the create commands; defaults to one next to the target")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		printKnownExamples(cmd.OutOrStdout(), cmd.Root().PersistentFlags())
	})
}

// initConfig binds the global flags to their settings keys and loads the
// config file and environment.
func initConfig(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"catalog":      config.KeyCatalog,
		"source-root":  config.KeySourceRoot,
		"template-dir": config.KeyTemplateDir,
		"summary":      config.KeySummaryPath,
	}
	for flag, key := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	config.Load()
	return nil
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the command's context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Debug("command failed", zap.Error(err))
		_ = logger.Sync()
		ui.WriteError(rootCmd.ErrOrStderr(), describeError(err))
	}
	return err
}

// describeError maps an error onto a report with suggestions where the
// error type allows one.
func describeError(err error) ui.ErrorOptions {
	cli := branding.CLIName()

	var (
		notFound  *registry.NotFoundError
		cfgErr    *registry.ConfigurationError
		schemaErr *manifest.SchemaError
		missing   *scaffold.MissingArtifactError
		busy      *scaffold.TargetBusyError
	)
	switch {
	case errors.As(err, &notFound):
		help := fmt.Sprintf("List examples: %s list", cli)
		if notFound.Kind == "category" {
			help = fmt.Sprintf("List categories: %s list --categories", cli)
		}
		var details []string
		if len(notFound.Known) > 0 {
			details = []string{fmt.Sprintf("Valid %s ids: %s", notFound.Kind, strings.Join(notFound.Known, ", "))}
		}
		return ui.ErrorOptions{
			Context:      notFound.Kind + " not found",
			Problem:      fmt.Sprintf("%q", notFound.ID),
			Details:      details,
			Suggestions:  ui.Suggest(notFound.ID, notFound.Known),
			HelpCommands: []string{help},
		}
	case errors.As(err, &cfgErr):
		return ui.ErrorOptions{
			Context:      "invalid catalog",
			Problem:      fmt.Sprintf("%d integrity issue(s)", len(cfgErr.Issues)),
			Details:      cfgErr.Issues,
			HelpCommands: []string{fmt.Sprintf("Check the catalog: %s validate", cli)},
		}
	case errors.As(err, &schemaErr):
		details := make([]string, 0, len(schemaErr.Issues))
		for _, issue := range schemaErr.Issues {
			if issue.Path != "" {
				details = append(details, issue.Path+": "+issue.Message)
			} else {
				details = append(details, issue.Message)
			}
		}
		return ui.ErrorOptions{
			Context: "invalid catalog",
			Problem: schemaErr.Origin + " does not match the catalog schema",
			Details: details,
		}
	case errors.As(err, &missing):
		return ui.ErrorOptions{
			Context:      "missing artifact",
			Problem:      fmt.Sprintf("%s (example %q)", missing.Path, missing.Example),
			Details:      []string{missing.Err.Error()},
			HelpCommands: []string{"Check --source-root or the source_root setting"},
		}
	case errors.As(err, &busy):
		help := "Wait for the other run to finish"
		if busy.Lock != "" {
			help = fmt.Sprintf("If no other %s run is active, remove %s", cli, busy.Lock)
		}
		return ui.ErrorOptions{
			Context:      "target busy",
			Problem:      err.Error(),
			HelpCommands: []string{help},
		}
	case errors.Is(err, scaffold.ErrTargetNotEmpty):
		return ui.ErrorOptions{
			Context:      "target exists",
			Problem:      err.Error(),
			HelpCommands: []string{"Choose a new or empty directory; existing projects are never overwritten"},
		}
	case errors.Is(err, context.Canceled):
		return ui.ErrorOptions{Level: ui.LevelWarning, Problem: "interrupted"}
	default:
		return ui.ErrorOptions{Problem: err.Error()}
	}
}

// printKnownExamples appends the example identifiers to help output.
func printKnownExamples(w io.Writer, flags *pflag.FlagSet) {
	if err := initConfig(flags); err != nil {
		return
	}
	s, err := config.Current()
	if err != nil {
		return
	}
	reg, _, err := loadRegistry(s)
	if err != nil {
		fmt.Fprintf(w, "\nExamples unavailable: %v\n", err)
		return
	}

	fmt.Fprintln(w, "\nAvailable examples:")
	for _, e := range reg.Examples() {
		fmt.Fprintf(w, "  %-30s %s\n", e.Name, truncate(e.Description, 60))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
