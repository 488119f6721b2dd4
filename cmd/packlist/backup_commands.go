package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"packlist/internal/backup"
	"packlist/internal/checklist"
	"packlist/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of the checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.backupDir(dirFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(_ context.Context, store *checklist.Store) error {
				snapshot, err := store.ExportSnapshot()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if toStdout {
					_, err := fmt.Fprintln(out, string(snapshot.Data))
					return err
				}
				path, err := backup.Write(dir, snapshot)
				if err != nil {
					return err
				}
				printStatus(out, statusOK, "Exported %d items to %s", snapshot.Items, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Backup directory (defaults to paths.backup_dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the backup instead of writing a file")
	cmd.MarkFlagsMutuallyExclusive("dir", "stdout")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the checklist with the contents of a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve backup path: %w", err)
			}
			confirm := ctx.newConfirmer(cmd)
			out := cmd.OutOrStdout()
			return ctx.withStore(cmd, func(runCtx context.Context, store *checklist.Store) error {
				ok, err := confirm(fmt.Sprintf("Replace the current %d items with %s?", store.Len(), filepath.Base(path)))
				if err != nil {
					return err
				}
				if !ok {
					printStatus(out, statusInfo, "Import cancelled")
					return nil
				}
				data, err := backup.ReadFile(path)
				if err != nil {
					return err
				}
				count, err := store.ImportItems(runCtx, data)
				if err != nil {
					return err
				}
				printStatus(out, statusOK, "Imported %d items from %s", count, path)
				return nil
			})
		},
	}
}

func newBackupsCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.backupDir(dirFlag)
			if err != nil {
				return err
			}
			entries, err := backup.List(dir)
			if err != nil {
				return err
			}

			if asJSON {
				view := make([]backupJSON, 0, len(entries))
				for _, entry := range entries {
					view = append(view, backupJSON{
						Name:    entry.Name,
						Path:    entry.Path,
						Size:    entry.Size,
						Taken:   entry.Taken,
						ModTime: entry.ModTime,
					})
				}
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No backups in %s\n", dir)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					entry.Taken.Format(time.DateTime),
					formatBytes(entry.Size),
					entry.Name,
				})
			}
			fmt.Fprintln(out, renderTable(tableView{
				headers: []string{"#", "Taken (UTC)", "Size", "File"},
				rows:    rows,
				aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				footer:  dir,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Backup directory (defaults to paths.backup_dir)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// backupDir returns the --dir override, or the configured backup directory.
func (c *commandContext) backupDir(flag string) (string, error) {
	if dir := strings.TrimSpace(flag); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return "", fmt.Errorf("resolve --dir: %w", err)
		}
		return expanded, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Paths.BackupDir, nil
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.1f KiB", float64(size)/unit)
}
