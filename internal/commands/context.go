package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/config"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/storage"
)

// openStorage resolves the database path from flags or environment and
// opens the repository. Callers own the returned repository.
func openStorage(cmd *cobra.Command) (*storage.SQLiteRepository, error) {
	cfg := config.Load()

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.SQLiteDBPath
	}

	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return repo, nil
}

func resolveOwner(cmd *cobra.Command) string {
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner = config.Load().DefaultOwnerID
	}
	return owner
}
