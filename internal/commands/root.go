package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the prodigyctl root command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prodigyctl",
		Short: "Administrative tooling for the prodigy finance service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("db", "", "SQLite database path (defaults to SQLITE_DB_PATH)")
	rootCmd.PersistentFlags().String("owner", "", "owner ID to operate on (defaults to DEFAULT_OWNER_ID)")

	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newInterpretCommand())

	return rootCmd
}
