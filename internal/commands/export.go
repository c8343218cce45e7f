package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

func newExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an owner's data as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer repo.Close()

			snap, err := services.NewExportService(repo).Export(cmd.Context(), resolveOwner(cmd))
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses, %d goals, %d investments to %s\n",
					len(snap.Expenses), len(snap.Goals), len(snap.Investments), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write snapshot to file instead of stdout")

	return cmd
}
