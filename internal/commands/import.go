package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Import a JSON snapshot into an owner's account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			var snap services.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			repo, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer repo.Close()

			res, err := services.NewExportService(repo).Import(cmd.Context(), resolveOwner(cmd), snap)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %d expenses, %d goals, %d investments, %d assets, %d liabilities\n",
				res.Expenses, res.Goals, res.Investments, res.Assets, res.Liabilities)
			return nil
		},
	}

	return cmd
}
