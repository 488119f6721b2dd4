package preflight

import (
	"context"

	"packlist/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional failures are reported as warnings.
	Optional bool
	Detail   string
}

// RunAll executes every applicable check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckStorage(ctx, cfg),
	}

	// Export creates the backup directory, so a missing one is only a warning.
	backupDir := CheckDirectoryAccess("Backup directory", cfg.Paths.BackupDir)
	backupDir.Optional = true
	results = append(results, backupDir)

	if cfg.Logging.File {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	return results
}
