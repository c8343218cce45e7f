package sheets

import (
	"context"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// BackupWriter is the port for outbound expense backup adapters. Append
// returns an adapter-specific reference for the written row.
type BackupWriter interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}
