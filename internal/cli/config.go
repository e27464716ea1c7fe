package cli

import (
	"fmt"

	"github.com/fhevm-examples/exgen/internal/branding"
	"github.com/fhevm-examples/exgen/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: fmt.Sprintf(`Read and write settings stored at ~/%s/config.yaml.

Keys: %s, %s, %s, %s, %s, %s, %s, %s.
Every key can also be set through the environment, e.g. %s.`,
		branding.HomeDir(),
		config.KeyCatalog, config.KeySourceRoot, config.KeyTemplateDir,
		config.KeyDocsOutput, config.KeyDocsAPI, config.KeyDocsGuide,
		config.KeySummaryPath, config.KeyBatchWorkers,
		branding.EnvVar("SOURCE_ROOT")),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
