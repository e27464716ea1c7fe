package cli

import (
	"github.com/fhevm-examples/exgen/internal/config"
	"github.com/fhevm-examples/exgen/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for schema and cross-reference errors",
	Long: `Load the catalog, check it against the catalog schema and format
version, and verify that every category member and every example category
exists. Exits non-zero and lists every issue when the catalog is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	reg, origin, err := loadRegistry(s)
	if err != nil {
		return err
	}
	if err := reg.Validate().Err(); err != nil {
		return err
	}

	ui.Success(cmd.OutOrStdout(), "%s is valid: %d examples in %d categories",
		origin, reg.Len(), len(reg.Categories()))
	return nil
}
